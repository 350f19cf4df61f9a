package asset

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

// File is a fully parsed SerializedFile (§4.4): the version-gated header,
// class schema table, object directory, and externals a bundle's
// SerializedFile node decodes into.
type File struct {
	MetadataSize int64
	FileSize     int64
	Format       int32
	DataOffset   int64
	LittleEndian bool

	UnityVersion    format.Version
	TargetPlatform  int32
	EnableTypeTree  bool
	BigIDsEnabled   bool

	Types    []SerializedType
	Objects  []ObjectInfo
	Externals []External
	RefTypes []SerializedType

	UserInformation string

	// Path is the bundle node name this file was parsed from, set by
	// env.Environment.Load after a successful Parse (asset.Parse itself
	// has no bundle context). Pre-5.0 AudioClip objects with externally
	// stored data reference their own SerializedFile's node by this path
	// rather than an inline path string (§4.7).
	Path string
}

// TypeByClassID returns the first SerializedType whose ClassID matches id,
// used by env's type-tree lookup as a fallback when the object's own type
// entry is out of range or has no nodes.
func (f *File) TypeByClassID(id int32) (SerializedType, bool) {
	for _, t := range f.Types {
		if t.ClassID == id {
			return t, true
		}
	}

	return SerializedType{}, false
}

// Parse reads one SerializedFile from data, the full version-gated
// schedule of §4.4.
func Parse(data []byte) (*File, error) {
	f := &File{}

	r := binary.NewReader(data, binary.BigEndian)

	metadataSize, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("asset: header metadata_size: %w", err)
	}
	fileSize, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("asset: header file_size: %w", err)
	}
	formatVersion, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("asset: header version: %w", err)
	}
	dataOffset, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("asset: header data_offset: %w", err)
	}

	f.MetadataSize = int64(metadataSize)
	f.FileSize = int64(fileSize)
	f.Format = int32(formatVersion)
	f.DataOffset = int64(dataOffset)

	if f.Format >= 9 {
		endianByte, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("asset: endian byte: %w", err)
		}
		if _, err := r.ReadBytes(3); err != nil {
			return nil, fmt.Errorf("asset: endian reserved bytes: %w", err)
		}
		f.LittleEndian = endianByte == 0
	} else {
		peekOffset := int(f.FileSize - f.MetadataSize)
		saved := r.Offset()
		r.Seek(peekOffset)
		endianByte, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("asset: endian byte (legacy position): %w", err)
		}
		r.Seek(saved)
		f.LittleEndian = endianByte == 0
	}

	if f.LittleEndian {
		r.SetOrder(binary.LittleEndian)
	}

	if f.Format >= 22 {
		metadataSize2, err := r.U32()
		if err != nil {
			return nil, fmt.Errorf("asset: re-read metadata_size: %w", err)
		}
		fileSize2, err := r.I64()
		if err != nil {
			return nil, fmt.Errorf("asset: re-read file_size: %w", err)
		}
		dataOffset2, err := r.I64()
		if err != nil {
			return nil, fmt.Errorf("asset: re-read data_offset: %w", err)
		}
		if _, err := r.ReadBytes(8); err != nil {
			return nil, fmt.Errorf("asset: reserved bytes: %w", err)
		}

		f.MetadataSize = int64(metadataSize2)
		f.FileSize = fileSize2
		f.DataOffset = dataOffset2
	}

	if f.Format >= 7 {
		engineVersion, err := r.NullTerminatedString()
		if err != nil {
			return nil, fmt.Errorf("asset: engine version: %w", err)
		}
		f.UnityVersion = format.ParseVersion(engineVersion)
	}

	if f.Format >= 8 {
		if f.TargetPlatform, err = r.I32(); err != nil {
			return nil, fmt.Errorf("asset: target platform: %w", err)
		}
	}
	if f.Format >= 13 {
		if f.EnableTypeTree, err = r.Bool(); err != nil {
			return nil, fmt.Errorf("asset: enable_type_tree: %w", err)
		}
	}

	typeCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("asset: type count: %w", err)
	}
	f.Types = make([]SerializedType, typeCount)
	for i := range f.Types {
		t, err := parseSerializedType(r, f.Format, f.EnableTypeTree, false)
		if err != nil {
			return nil, fmt.Errorf("asset: type %d: %w", i, err)
		}
		f.Types[i] = t
	}

	if f.Format >= 7 && f.Format < 14 {
		bigIDs, err := r.I32()
		if err != nil {
			return nil, fmt.Errorf("asset: big id flag: %w", err)
		}
		f.BigIDsEnabled = bigIDs != 0
	}

	objectCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("asset: object count: %w", err)
	}
	f.Objects = make([]ObjectInfo, objectCount)
	for i := range f.Objects {
		obj, err := parseObjectInfo(r, f)
		if err != nil {
			return nil, fmt.Errorf("asset: object %d: %w", i, err)
		}
		f.Objects[i] = obj
	}

	if f.Format >= 11 {
		scriptCount, err := r.I32()
		if err != nil {
			return nil, fmt.Errorf("asset: script type count: %w", err)
		}
		for i := int32(0); i < scriptCount; i++ {
			if _, err := r.I32(); err != nil { // file_index, unused (PPtr resolution ignores it, §9)
				return nil, fmt.Errorf("asset: script type %d file index: %w", i, err)
			}
			if _, err := readPathIDWidth(r, f.Format, f.BigIDsEnabled); err != nil {
				return nil, fmt.Errorf("asset: script type %d identifier: %w", i, err)
			}
		}
	}

	externalCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("asset: external count: %w", err)
	}
	f.Externals = make([]External, externalCount)
	for i := range f.Externals {
		var ext External
		if f.Format >= 6 {
			if _, err := r.NullTerminatedString(); err != nil { // discarded legacy field
				return nil, fmt.Errorf("asset: external %d discarded field: %w", i, err)
			}
		}
		if f.Format >= 5 {
			if ext.GUID, err = r.ReadBytesCopy(16); err != nil {
				return nil, fmt.Errorf("asset: external %d guid: %w", i, err)
			}
			if ext.Type, err = r.I32(); err != nil {
				return nil, fmt.Errorf("asset: external %d type: %w", i, err)
			}
		}
		if ext.PathName, err = r.NullTerminatedString(); err != nil {
			return nil, fmt.Errorf("asset: external %d path name: %w", i, err)
		}
		f.Externals[i] = ext
	}

	if f.Format >= 20 {
		refTypeCount, err := r.I32()
		if err != nil {
			return nil, fmt.Errorf("asset: ref type count: %w", err)
		}
		f.RefTypes = make([]SerializedType, refTypeCount)
		for i := range f.RefTypes {
			t, err := parseSerializedType(r, f.Format, f.EnableTypeTree, true)
			if err != nil {
				return nil, fmt.Errorf("asset: ref type %d: %w", i, err)
			}
			f.RefTypes[i] = t
		}
	}

	if f.Format >= 5 {
		if f.UserInformation, err = r.NullTerminatedString(); err != nil {
			return nil, fmt.Errorf("asset: user information: %w", err)
		}
	}

	return f, nil
}

// readPathIDWidth reads a path-id-shaped field (ObjectInfo.PathID and the
// script-type reference identifier share the same width rule, §4.4 steps
// 8-9): raw i64 if big ids are enabled, i32-promoted for format<14,
// otherwise align(4) then i64.
func readPathIDWidth(r *binary.Reader, formatVersion int32, bigIDs bool) (int64, error) {
	if bigIDs {
		return r.I64()
	}
	if formatVersion < 14 {
		v, err := r.I32()
		return int64(v), err
	}
	if err := r.Align(4); err != nil {
		return 0, err
	}

	return r.I64()
}

func parseObjectInfo(r *binary.Reader, f *File) (ObjectInfo, error) {
	var obj ObjectInfo

	pathID, err := readPathIDWidth(r, f.Format, f.BigIDsEnabled)
	if err != nil {
		return obj, fmt.Errorf("path_id: %w", err)
	}
	obj.PathID = pathID

	if f.Format >= 22 {
		byteStart, err := r.I64()
		if err != nil {
			return obj, fmt.Errorf("byte_start: %w", err)
		}
		obj.ByteStart = byteStart
	} else {
		byteStart, err := r.U32()
		if err != nil {
			return obj, fmt.Errorf("byte_start: %w", err)
		}
		obj.ByteStart = int64(byteStart)
	}
	obj.ByteStart += f.DataOffset

	if obj.ByteSize, err = r.U32(); err != nil {
		return obj, fmt.Errorf("byte_size: %w", err)
	}
	if obj.TypeID, err = r.I32(); err != nil {
		return obj, fmt.Errorf("type_id: %w", err)
	}

	if f.Format < 16 {
		classID, err := r.U16()
		if err != nil {
			return obj, fmt.Errorf("class_id: %w", err)
		}
		obj.ClassID = int32(classID)
	} else if int(obj.TypeID) < len(f.Types) {
		obj.ClassID = f.Types[obj.TypeID].ClassID
	}

	if f.Format < 11 {
		if _, err := r.U16(); err != nil { // is_destroyed, unused
			return obj, fmt.Errorf("is_destroyed: %w", err)
		}
	}
	if f.Format >= 11 && f.Format < 17 {
		if _, err := r.I16(); err != nil { // script_type_index, unused by downstream readers
			return obj, fmt.Errorf("script_type_index: %w", err)
		}
	}
	if f.Format == 15 || f.Format == 16 {
		if _, err := r.U8(); err != nil { // stripped
			return obj, fmt.Errorf("stripped: %w", err)
		}
	}

	return obj, nil
}
