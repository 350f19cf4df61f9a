package compress

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// Decompressor decompresses a block of known expected size. Implementations
// must return errs.ErrDecompress (wrapped) if the decompressed length does
// not equal expectedSize.
type Decompressor interface {
	Decompress(data []byte, expectedSize int) ([]byte, error)
}

// BlockCodec is the factory surface for bundle block/directory
// decompression (§4.3 steps 4 and 7), keyed by the codec bits packed into
// a block's flags field.
func BlockCodec(c format.BlockCompression) (Decompressor, error) {
	switch c {
	case format.CompressionNone:
		return NoneCodec{}, nil
	case format.CompressionLZ4, format.CompressionLZ4HC:
		return LZ4Codec{}, nil
	case format.CompressionLZMA:
		return LZMACodec{}, nil
	case format.CompressionLZHAM:
		// Open Question (§9): observed bundles route LZHAM-flagged blocks
		// through the LZ4HC decoder. Preserved verbatim; not a real LZHAM
		// implementation.
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown block compression %d", errs.ErrInvalidValue, c)
	}
}

// Codec is a full compress+decompress pair, used by the in-memory
// decoded-image cache (package env) rather than the bundle block path.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
