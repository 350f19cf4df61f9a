package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/go-unity/assetkit/errs"
)

// lz4CompressorPool pools lz4.Compressor instances; assetkit only ever
// decompresses bundle blocks, but the pool is kept symmetric with the
// teacher's own compress.LZ4Compressor in case a future encode path is
// added (bundle writing is explicitly a Non-goal today, §1).
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec decodes both LZ4 and LZ4HC bundle blocks: the two differ only in
// how the encoder chose matches, not in the decoded bitstream, so one
// decoder serves both (§4.2).
type LZ4Codec struct{}

var _ Decompressor = LZ4Codec{}

// Decompress decompresses an LZ4 block into exactly expectedSize bytes, as
// bundle block/directory records always carry their uncompressed size
// (§4.3 step 4/7) — unlike a general LZ4 frame consumer, there's no need to
// guess-and-grow a destination buffer.
func (LZ4Codec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}

	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", errs.ErrDecompress, err)
	}
	if n != expectedSize {
		return nil, fmt.Errorf("%w: lz4: expected %d bytes, got %d", errs.ErrDecompress, expectedSize, n)
	}

	return dst, nil
}

// compressLZ4Block has no caller in this module; production assetkit never
// writes bundles (§1 Non-goals).
func compressLZ4Block(data []byte) ([]byte, error) {
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// CompressBlock returns n==0 when the input is incompressible;
		// lz4.UncompressBlock can't invert that, so store raw in tests.
		return nil, fmt.Errorf("incompressible input, use stored form in test fixture")
	}

	return dst[:n], nil
}
