//go:build nobuild

package compress

// This file mirrors the teacher's own compress/zstd_cgo.go: a cgo-backed
// zstd codec using github.com/valyala/gozstd, gated behind a build tag that
// never matches by default ("nobuild"). It documents that gozstd is a
// deliberately-available-but-unused alternative backend for
// ZstdImageCacheCodec rather than a dropped dependency — flip the build tag
// to swap in the cgo implementation for environments where cgo is
// acceptable and the extra throughput matters.

import "github.com/valyala/gozstd"

func (ZstdImageCacheCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (ZstdImageCacheCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
