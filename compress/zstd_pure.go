//go:build !nobuild

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool and zstdEncoderPool pool klauspost/compress/zstd
// encoders/decoders. The library explicitly documents that decoders should
// be reused to avoid per-call allocation after warmup, so env's
// decoded-image cache keeps a small pool rather than constructing one per
// DecodeImage call.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to build zstd decoder: %v", err))
		}

		return d
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to build zstd encoder: %v", err))
		}

		return e
	},
}

// ZstdImageCacheCodec compresses cold decoded-image cache entries with
// Zstandard. It's the pure-Go default; see zstd_cgo.go for the cgo-backed
// alternative, disabled by default the same way the teacher disables its
// own cgo zstd path.
type ZstdImageCacheCodec struct{}

var _ Codec = ZstdImageCacheCodec{}

// NewZstdImageCacheCodec returns the pure-Go zstd Codec for env's image cache.
func NewZstdImageCacheCodec() Codec { return ZstdImageCacheCodec{} }

func (ZstdImageCacheCodec) Compress(data []byte) ([]byte, error) {
	enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (ZstdImageCacheCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: zstd decode: %w", err)
	}

	return out, nil
}
