package compress

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
)

// NoneCodec is the block Decompressor for uncompressed bundle blocks: a
// pass-through that still validates the declared size.
type NoneCodec struct{}

var _ Decompressor = NoneCodec{}

func (NoneCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if len(data) != expectedSize {
		return nil, fmt.Errorf("%w: none codec expected %d bytes, got %d", errs.ErrDecompress, expectedSize, len(data))
	}

	return data, nil
}

// noneImageCacheCodec is the identity Codec for env's image cache: entries
// below the cache's compression threshold aren't transformed at all.
type noneImageCacheCodec struct{}

var _ Codec = noneImageCacheCodec{}

func (noneImageCacheCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noneImageCacheCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

// NewNoneImageCacheCodec returns the identity Codec used by default for
// env's decoded-image cache.
func NewNoneImageCacheCodec() Codec { return noneImageCacheCodec{} }
