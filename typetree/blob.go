package typetree

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
)

// parseBlob reads the flat node list + string pool layout used by format
// ≥12 or ==10 (§4.5).
func parseBlob(r *binary.Reader) ([]Node, error) {
	nodeCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("typetree: read node count: %w", err)
	}
	stringBufferSize, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("typetree: read string buffer size: %w", err)
	}

	type rawNode struct {
		version    int16
		level      uint8
		isArray    bool
		typeOffset uint32
		nameOffset uint32
		byteSize   int32
		index      int32
		metaFlag   int32
		refHash    uint64
	}

	raws := make([]rawNode, nodeCount)
	for i := range raws {
		var rn rawNode
		v, err := r.U16()
		if err != nil {
			return nil, fmt.Errorf("typetree: node %d version: %w", i, err)
		}
		rn.version = int16(v)

		if rn.level, err = r.U8(); err != nil {
			return nil, fmt.Errorf("typetree: node %d level: %w", i, err)
		}
		if rn.isArray, err = r.Bool(); err != nil {
			return nil, fmt.Errorf("typetree: node %d is_array: %w", i, err)
		}
		if rn.typeOffset, err = r.U32(); err != nil {
			return nil, fmt.Errorf("typetree: node %d type offset: %w", i, err)
		}
		if rn.nameOffset, err = r.U32(); err != nil {
			return nil, fmt.Errorf("typetree: node %d name offset: %w", i, err)
		}
		if rn.byteSize, err = r.I32(); err != nil {
			return nil, fmt.Errorf("typetree: node %d byte size: %w", i, err)
		}
		if rn.index, err = r.I32(); err != nil {
			return nil, fmt.Errorf("typetree: node %d index: %w", i, err)
		}
		if rn.metaFlag, err = r.I32(); err != nil {
			return nil, fmt.Errorf("typetree: node %d meta flag: %w", i, err)
		}
		if rn.version >= 19 {
			if rn.refHash, err = r.U64(); err != nil {
				return nil, fmt.Errorf("typetree: node %d ref hash: %w", i, err)
			}
		}

		raws[i] = rn
	}

	pool, err := r.ReadBytes(int(stringBufferSize))
	if err != nil {
		return nil, fmt.Errorf("typetree: read string pool: %w", err)
	}

	nodes := make([]Node, nodeCount)
	for i, rn := range raws {
		typeName, err := resolveString(rn.typeOffset, pool)
		if err != nil {
			return nil, fmt.Errorf("typetree: node %d type name: %w", i, err)
		}
		fieldName, err := resolveString(rn.nameOffset, pool)
		if err != nil {
			return nil, fmt.Errorf("typetree: node %d field name: %w", i, err)
		}

		nodes[i] = Node{
			Version:   rn.version,
			Level:     rn.level,
			IsArray:   rn.isArray,
			TypeName:  typeName,
			FieldName: fieldName,
			ByteSize:  rn.byteSize,
			Index:     rn.index,
			MetaFlag:  rn.metaFlag,
			RefHash:   rn.refHash,
		}
	}

	return nodes, nil
}
