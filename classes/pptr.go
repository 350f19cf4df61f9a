package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
)

// Resolver looks up a materialized object by path id. Environment
// implements this; classes.PPtr depends only on this interface so the
// classes package never imports package env, avoiding an import cycle
// (env depends on classes for its dispatch table).
type Resolver interface {
	FindByPathID(pathID int64) (any, bool)
}

// PPtr is a weak cross-file reference (§4.7, §9 "PPtr resolution without
// cycles"): file_id plus path_id, resolved lazily by the owning
// Environment rather than a stored pointer.
type PPtr[T any] struct {
	FileID int32
	PathID int64
}

// ReadPPtr reads a PPtr<T>: file_id (i32), then path_id — i32 when the
// owning SerializedFile's format is < 14, else i64 (§4.7).
func ReadPPtr[T any](r *binary.Reader, serializedFileFormat int32) (PPtr[T], error) {
	var p PPtr[T]

	fileID, err := r.I32()
	if err != nil {
		return p, fmt.Errorf("pptr: file_id: %w", err)
	}
	p.FileID = fileID

	if serializedFileFormat < 14 {
		v, err := r.I32()
		if err != nil {
			return p, fmt.Errorf("pptr: path_id: %w", err)
		}
		p.PathID = int64(v)
	} else {
		v, err := r.I64()
		if err != nil {
			return p, fmt.Errorf("pptr: path_id: %w", err)
		}
		p.PathID = v
	}

	return p, nil
}

// IsNull reports whether the reference is a null PPtr.
func (p PPtr[T]) IsNull() bool { return p.PathID == 0 }

// Get resolves the referenced object by path_id only (§9: "PPtr::get_obj
// performs a lookup by id rather than dereferencing a stored reference";
// §4.7 Open Question: file_id is deliberately not applied).
func (p PPtr[T]) Get(res Resolver) (T, bool) {
	var zero T
	if p.IsNull() {
		return zero, false
	}

	obj, ok := res.FindByPathID(p.PathID)
	if !ok {
		return zero, false
	}

	v, ok := obj.(T)

	return v, ok
}
