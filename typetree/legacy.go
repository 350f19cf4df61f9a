package typetree

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
)

// parseLegacy reads the pre-blob recursive layout (§4.5): each node is a
// self-contained record followed immediately by its children, rather than
// a flat array plus separate string pool.
func parseLegacy(r *binary.Reader, format int32) ([]Node, error) {
	var nodes []Node

	var walk func(level uint8) error
	walk = func(level uint8) error {
		typeName, err := r.NullTerminatedString()
		if err != nil {
			return fmt.Errorf("typetree: legacy type name: %w", err)
		}
		fieldName, err := r.NullTerminatedString()
		if err != nil {
			return fmt.Errorf("typetree: legacy field name: %w", err)
		}

		size, err := r.I32()
		if err != nil {
			return fmt.Errorf("typetree: legacy size: %w", err)
		}

		if format == 2 {
			if _, err := r.I32(); err != nil { // variable_count, unused
				return fmt.Errorf("typetree: legacy variable count: %w", err)
			}
		}

		index := int32(0)
		if format != 3 {
			if index, err = r.I32(); err != nil {
				return fmt.Errorf("typetree: legacy index: %w", err)
			}
		}

		typeFlag, err := r.I32()
		if err != nil {
			return fmt.Errorf("typetree: legacy type flag: %w", err)
		}
		version, err := r.I32()
		if err != nil {
			return fmt.Errorf("typetree: legacy version: %w", err)
		}

		metaFlag := int32(0)
		if format != 3 {
			if metaFlag, err = r.I32(); err != nil {
				return fmt.Errorf("typetree: legacy meta flag: %w", err)
			}
		}

		childCount, err := r.I32()
		if err != nil {
			return fmt.Errorf("typetree: legacy child count: %w", err)
		}

		nodes = append(nodes, Node{
			Version:   int16(version),
			Level:     level,
			TypeName:  typeName,
			FieldName: fieldName,
			ByteSize:  size,
			Index:     index,
			TypeFlags: typeFlag,
			MetaFlag:  metaFlag,
		})

		for i := int32(0); i < childCount; i++ {
			if err := walk(level + 1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(0); err != nil {
		return nil, err
	}

	return nodes, nil
}
