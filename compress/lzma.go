package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"

	"github.com/go-unity/assetkit/errs"
)

// lzmaPropsSize is the 5-byte LZMA properties header (1 byte lc/lp/pb +
// 4-byte little-endian dictionary size) Unity stores in front of its
// compressed block stream. The standard 13-byte LZMA stream header adds an
// 8-byte little-endian uncompressed-size field after that; Unity omits it
// entirely, since the bundle directory already records the uncompressed
// size out of band (§4.2).
const lzmaPropsSize = 5

// LZMACodec decodes Unity's headerless LZMA dialect by reconstructing the
// 13-byte header github.com/ulikunitz/xz/lzma expects — properties as
// stored, followed by the expected size injected as little-endian uint64 —
// before handing the combined stream to the library's reader. This mirrors
// the pattern of synthesizing an LZMA header in front of a headerless
// stream used by other headerless-LZMA container formats (grounded on a
// CHD LZMA codec that does the same header reconstruction for MAME hunks).
type LZMACodec struct{}

var _ Decompressor = LZMACodec{}

func (LZMACodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if len(data) < lzmaPropsSize {
		return nil, fmt.Errorf("%w: lzma: properties header truncated", errs.ErrDecompress)
	}

	header := make([]byte, 13)
	copy(header[0:lzmaPropsSize], data[0:lzmaPropsSize])
	binary.LittleEndian.PutUint64(header[lzmaPropsSize:13], uint64(expectedSize))

	stream := io.MultiReader(bytes.NewReader(header), bytes.NewReader(data[lzmaPropsSize:]))

	r, err := lzma.NewReader(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: lzma init: %w", errs.ErrDecompress, err)
	}

	dst := make([]byte, expectedSize)
	n, err := io.ReadFull(r, dst)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("%w: lzma read: %w", errs.ErrDecompress, err)
	}
	if n != expectedSize {
		return nil, fmt.Errorf("%w: lzma: expected %d bytes, got %d", errs.ErrDecompress, expectedSize, n)
	}

	return dst, nil
}
