package bundle

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

// block is one entry of the block directory (§4.3 step 5): the
// compressed/uncompressed size of one chunk of the virtual file image and
// the codec it was compressed with.
type block struct {
	uncompressedSize uint32
	compressedSize   uint32
	flags            uint16
}

func (b block) compression() format.BlockCompression {
	return format.BlockCompression(b.flags & format.BlockFlagCompressionMask)
}

// node is one entry of the node directory (§4.3 step 5): a named byte range
// within the virtual file image.
type node struct {
	offset int64
	size   int64
	flags  uint32
	path   string
}

type directory struct {
	blocks []block
	nodes  []node
}

const directoryHashSize = 16

func parseDirectory(r *binary.Reader) (directory, error) {
	var d directory

	if _, err := r.ReadBytes(directoryHashSize); err != nil {
		return d, fmt.Errorf("bundle: skip directory content hash: %w", err)
	}

	blockCount, err := r.I32()
	if err != nil {
		return d, fmt.Errorf("bundle: read block count: %w", err)
	}
	d.blocks = make([]block, blockCount)
	for i := range d.blocks {
		var b block
		if b.uncompressedSize, err = r.U32(); err != nil {
			return d, fmt.Errorf("bundle: read block %d uncompressed size: %w", i, err)
		}
		if b.compressedSize, err = r.U32(); err != nil {
			return d, fmt.Errorf("bundle: read block %d compressed size: %w", i, err)
		}
		if b.flags, err = r.U16(); err != nil {
			return d, fmt.Errorf("bundle: read block %d flags: %w", i, err)
		}
		d.blocks[i] = b
	}

	nodeCount, err := r.I32()
	if err != nil {
		return d, fmt.Errorf("bundle: read node count: %w", err)
	}
	d.nodes = make([]node, nodeCount)
	for i := range d.nodes {
		var n node
		if n.offset, err = r.I64(); err != nil {
			return d, fmt.Errorf("bundle: read node %d offset: %w", i, err)
		}
		if n.size, err = r.I64(); err != nil {
			return d, fmt.Errorf("bundle: read node %d size: %w", i, err)
		}
		if n.flags, err = r.U32(); err != nil {
			return d, fmt.Errorf("bundle: read node %d flags: %w", i, err)
		}
		if n.path, err = r.NullTerminatedString(); err != nil {
			return d, fmt.Errorf("bundle: read node %d path: %w", i, err)
		}
		d.nodes[i] = n
	}

	return d, nil
}
