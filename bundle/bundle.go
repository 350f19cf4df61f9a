package bundle

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/compress"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
	"github.com/go-unity/assetkit/internal/pool"
)

// File is one named byte range sliced out of the bundle's virtual file
// image (§4.3 step 8) — typically a SerializedFile plus zero or more
// streamed resource files (textures, audio) referenced by sibling name.
type File struct {
	Path string
	Data *SharedBytes
}

// Bundle is a parsed UnityFS container: its header plus the files sliced
// out of the decompressed, concatenated block stream.
type Bundle struct {
	Header Header
	Files  []File
}

// Parse parses a complete UnityFS bundle from data (§4.3). Malformed
// signatures, unknown codecs, decompression size mismatches, and node
// ranges exceeding the assembled image are all fatal.
func Parse(data []byte) (*Bundle, error) {
	r := binary.NewReader(data, binary.BigEndian)

	header, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	dirBytes, err := directoryBlobBytes(r, data, header)
	if err != nil {
		return nil, err
	}

	dirCodec, err := compress.BlockCodec(format.BlockCompression(header.Flags & format.FlagCompressionMask))
	if err != nil {
		return nil, fmt.Errorf("bundle: directory codec: %w", err)
	}
	decompressedDir, err := dirCodec.Decompress(dirBytes, int(header.UncompressedDirSize))
	if err != nil {
		return nil, fmt.Errorf("bundle: decompress directory: %w", err)
	}

	dir, err := parseDirectory(binary.NewReader(decompressedDir, binary.BigEndian))
	if err != nil {
		return nil, fmt.Errorf("bundle: parse directory: %w", err)
	}

	if header.Flags&format.FlagPadBlockInfoAtStart != 0 {
		if err := r.Align(16); err != nil {
			return nil, fmt.Errorf("bundle: align before block stream: %w", err)
		}
	}

	image, err := assembleBlocks(r, dir.blocks)
	if err != nil {
		return nil, err
	}

	files, err := sliceNodes(image, dir.nodes)
	if err != nil {
		return nil, err
	}

	return &Bundle{Header: header, Files: files}, nil
}

// directoryBlobBytes locates the compressed directory blob: at the end of
// the file when BLOCKS_INFO_AT_END is set, otherwise immediately following
// the header (§4.3 step 4).
func directoryBlobBytes(r *binary.Reader, data []byte, header Header) ([]byte, error) {
	if header.Flags&format.FlagBlocksInfoAtEnd != 0 {
		start := len(data) - int(header.CompressedDirSize)
		if start < r.Offset() || start < 0 {
			return nil, fmt.Errorf("%w: directory blob at end overlaps header", errs.ErrInvalidValue)
		}

		return data[start:], nil
	}

	return r.ReadBytes(int(header.CompressedDirSize))
}

// assembleBlocks decompresses each block in order from r's current position
// and appends the result into a pooled buffer, producing the virtual file
// image (§4.3 steps 5-7).
func assembleBlocks(r *binary.Reader, blocks []block) (*SharedBytes, error) {
	buf := pool.GetBlockBuffer()

	for i, b := range blocks {
		raw, err := r.ReadBytes(int(b.compressedSize))
		if err != nil {
			return nil, fmt.Errorf("bundle: read block %d: %w", i, err)
		}

		codec, err := compress.BlockCodec(b.compression())
		if err != nil {
			return nil, fmt.Errorf("bundle: block %d codec: %w", i, err)
		}

		decoded, err := codec.Decompress(raw, int(b.uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("bundle: decompress block %d: %w", i, err)
		}

		if _, err := buf.Write(decoded); err != nil {
			return nil, fmt.Errorf("bundle: append block %d: %w", i, err)
		}
	}

	return NewSharedBytes(buf), nil
}

// sliceNodes cuts image into one File per node, handing out a retained
// slice reference per node and releasing the bundle's own top-level
// reference once every node holds its own.
func sliceNodes(image *SharedBytes, nodes []node) ([]File, error) {
	files := make([]File, len(nodes))

	for i, n := range nodes {
		if n.offset < 0 || n.size < 0 || n.offset+n.size > int64(image.Len()) {
			return nil, fmt.Errorf("%w: node %q range [%d,%d) exceeds image length %d",
				errs.ErrInvalidValue, n.path, n.offset, n.offset+n.size, image.Len())
		}

		files[i] = File{Path: n.path, Data: image.Slice(int(n.offset), int(n.size))}
	}

	image.Release()

	return files, nil
}

// Find returns the first File whose path's basename equals name, used to
// resolve StreamingInfo and other sibling-node lookups (§4.7 Texture2D,
// Mesh, AudioClip).
func (b *Bundle) Find(basename string) (File, bool) {
	for _, f := range b.Files {
		if pathBasename(f.Path) == basename {
			return f, true
		}
	}

	return File{}, false
}

func pathBasename(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == '\\' {
			return p[i+1:]
		}
	}

	return p
}
