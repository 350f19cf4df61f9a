package compress

import "github.com/klauspost/compress/s2"

// S2ImageCacheCodec trades compression ratio for speed relative to
// ZstdImageCacheCodec; useful for env callers that walk every texture in a
// large bundle and care more about cache-hit latency than resident memory.
type S2ImageCacheCodec struct{}

var _ Codec = S2ImageCacheCodec{}

// NewS2ImageCacheCodec returns the S2 Codec for env's image cache.
func NewS2ImageCacheCodec() Codec { return S2ImageCacheCodec{} }

func (S2ImageCacheCodec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (S2ImageCacheCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
