// Package typetree decodes Unity's TypeTree schema (§4.5-4.6): a
// flattened, level-indexed description of a class's on-disk field layout,
// plus the generic reader that walks an object's bytes against that
// schema to produce a self-describing dynamic value tree.
package typetree

// Node is one flattened TypeTree entry. Both the blob layout (§4.5, format
// ≥12 or ==10) and the legacy recursive layout are normalized into this
// same flat, level-indexed representation before traversal (§4.6).
type Node struct {
	Version   int16
	Level     uint8
	IsArray   bool
	TypeName  string
	FieldName string
	ByteSize  int32
	Index     int32
	TypeFlags int32
	MetaFlag  int32
	RefHash   uint64
}

// metaFlagAligned is the bit (§4.6) marking that a 4-byte alignment is
// required after reading the field this node describes.
const metaFlagAligned int32 = 0x4000

// Aligned reports whether a read of this node's field must be followed by
// align(4).
func (n Node) Aligned() bool { return n.MetaFlag&metaFlagAligned != 0 }
