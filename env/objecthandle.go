package env

import (
	"fmt"

	"github.com/go-unity/assetkit/asset"
	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/format"
	"github.com/go-unity/assetkit/typetree"
)

// ObjectHandle is one entry of Environment's flattened object table: an
// object directory entry plus enough of its owning file and bundle to
// decode it on demand (§6). Handles are value-cheap; Environment hands out
// pointers to the ones it owns rather than copies.
type ObjectHandle struct {
	env *Environment

	bundleIdx int
	fileIdx   int
	objIdx    int

	bundle *bundle.Bundle
	file   *asset.File
	info   asset.ObjectInfo
	data   []byte
}

// PathID is the object's identifier within its owning SerializedFile,
// the key PPtr resolution matches against (§4.7).
func (h *ObjectHandle) PathID() int64 { return h.info.PathID }

// Class is the object's Unity class id.
func (h *ObjectHandle) Class() format.ClassID { return format.ClassID(h.info.ClassID) }

// Size is the object's raw serialized byte size.
func (h *ObjectHandle) Size() uint32 { return h.info.ByteSize }

// Decode runs the registered classes.Read reader for this object's class
// over its raw byte range, building the classes.Context the reader needs
// from the owning SerializedFile and bundle.
func (h *ObjectHandle) Decode() (any, error) {
	r := binary.NewReader(h.data, binary.BigEndian)
	if h.file.LittleEndian {
		r.SetOrder(binary.LittleEndian)
	}

	ctx := classes.Context{
		SerializedFileFormat: h.file.Format,
		EngineVersion:        h.file.UnityVersion,
		Bundle:               h.bundle,
		FilePath:             h.file.Path,
	}

	v, err := classes.Read(h.Class(), r, ctx)
	if err != nil {
		return nil, fmt.Errorf("object %d (class %s): %w", h.info.PathID, h.Class(), err)
	}

	return v, nil
}

// ReadTypeTree decodes the object against its own SerializedType's type
// tree nodes (§4.5), independent of whether a typed reader is registered
// for its class. Returns errs.ErrUnimplemented-wrapping behavior only via
// typetree.Read itself; a file with EnableTypeTree false or a type with no
// Nodes yields a zero Value and a descriptive error.
func (h *ObjectHandle) ReadTypeTree() (typetree.Value, error) {
	nodes, err := h.typeNodes()
	if err != nil {
		return typetree.Value{}, err
	}

	r := binary.NewReader(h.data, binary.BigEndian)
	if h.file.LittleEndian {
		r.SetOrder(binary.LittleEndian)
	}

	v, err := typetree.Read(r, nodes)
	if err != nil {
		return typetree.Value{}, fmt.Errorf("object %d type tree: %w", h.info.PathID, err)
	}

	return v, nil
}

func (h *ObjectHandle) typeNodes() ([]typetree.Node, error) {
	if int(h.info.TypeID) >= 0 && int(h.info.TypeID) < len(h.file.Types) {
		t := h.file.Types[h.info.TypeID]
		if len(t.Nodes) > 0 {
			return t.Nodes, nil
		}
	}

	if t, ok := h.file.TypeByClassID(h.info.ClassID); ok && len(t.Nodes) > 0 {
		return t.Nodes, nil
	}

	return nil, fmt.Errorf("object %d: no type tree available (file built without type trees?)", h.info.PathID)
}
