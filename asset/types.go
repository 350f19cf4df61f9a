package asset

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/typetree"
)

// SerializedType describes one class's on-disk shape (§4.5): its numeric
// class id plus, if type trees are enabled, the flattened field schema
// used by package typetree to drive the generic reader.
type SerializedType struct {
	ClassID          int32
	IsStripped       bool
	ScriptTypeIndex  int16
	ScriptID         []byte // 16 bytes when present
	OldTypeHash      []byte // 16 bytes when present
	Nodes            []typetree.Node
	KlassName        string
	Namespace        string
	AssemblyName     string
	TypeDependencies []int32
}

func parseSerializedType(r *binary.Reader, format int32, enableTypeTree, isRefType bool) (SerializedType, error) {
	var t SerializedType

	classID, err := r.I32()
	if err != nil {
		return t, fmt.Errorf("asset: type class id: %w", err)
	}
	t.ClassID = classID
	t.ScriptTypeIndex = -1

	if format >= 16 {
		if t.IsStripped, err = r.Bool(); err != nil {
			return t, fmt.Errorf("asset: type is_stripped: %w", err)
		}
	}
	if format >= 17 {
		v, err := r.I16()
		if err != nil {
			return t, fmt.Errorf("asset: type script_type_index: %w", err)
		}
		t.ScriptTypeIndex = v
	}

	if format >= 13 {
		hasScriptID := (isRefType && t.ScriptTypeIndex >= 0) ||
			(classID < 0 && format < 16) ||
			(classID == 114 && format >= 16)
		if hasScriptID {
			if t.ScriptID, err = r.ReadBytesCopy(16); err != nil {
				return t, fmt.Errorf("asset: type script id: %w", err)
			}
		}
		if t.OldTypeHash, err = r.ReadBytesCopy(16); err != nil {
			return t, fmt.Errorf("asset: type old type hash: %w", err)
		}
	}

	if enableTypeTree {
		nodes, err := typetree.Parse(r, format)
		if err != nil {
			return t, fmt.Errorf("asset: type tree: %w", err)
		}
		t.Nodes = nodes
	}

	if format >= 21 {
		if isRefType {
			if t.KlassName, err = r.NullTerminatedString(); err != nil {
				return t, fmt.Errorf("asset: type klass name: %w", err)
			}
			if t.Namespace, err = r.NullTerminatedString(); err != nil {
				return t, fmt.Errorf("asset: type namespace: %w", err)
			}
			if t.AssemblyName, err = r.NullTerminatedString(); err != nil {
				return t, fmt.Errorf("asset: type assembly name: %w", err)
			}
		} else {
			deps, err := r.I32Vector()
			if err != nil {
				return t, fmt.Errorf("asset: type dependencies: %w", err)
			}
			t.TypeDependencies = deps
		}
	}

	return t, nil
}

// ObjectInfo is one entry of an Asset's object directory (§4.4 step 8): it
// locates an object's raw bytes and names its class.
type ObjectInfo struct {
	PathID    int64
	ByteStart int64
	ByteSize  uint32
	TypeID    int32
	ClassID   int32
}

// External is one entry of an Asset's externals table (§4.4 step 10): a
// reference to another Asset file this one's PPtrs may point into.
type External struct {
	GUID     []byte // 16 bytes when present
	Type     int32
	PathName string
}
