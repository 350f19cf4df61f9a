package typetree

import (
	"fmt"
	"strconv"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/errs"
)

// Kind discriminates Value's tagged union (§9 Design Notes: "model the
// dynamic value as a tagged union").
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindI64
	KindU64
	KindF64
	KindString
	KindBytes
	KindArray
	KindMap
	KindStruct
)

// MapEntry is one key/value pair of a Map-kind Value.
type MapEntry struct {
	Key   Value
	Value Value
}

// Value is a self-describing dynamic value produced by walking an object's
// bytes against its TypeTree (§4.6).
type Value struct {
	Kind   Kind
	Bool   bool
	I64    int64
	U64    uint64
	F64    float64
	Str    string
	Bytes  []byte
	Array  []Value
	Map    []MapEntry
	Struct map[string]Value
}

// Field looks up a struct-kind Value's field by name.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindStruct {
		return Value{}, false
	}
	f, ok := v.Struct[name]

	return f, ok
}

// stringKey stringifies a Value for use as a map key (§4.6: "Keys become
// map keys, stringified if non-string").
func (v Value) stringKey() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindI64:
		return strconv.FormatInt(v.I64, 10)
	case KindU64:
		return strconv.FormatUint(v.U64, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindF64:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	default:
		return ""
	}
}

// Read walks nodes (as produced by Parse) against r, starting at the root
// node, and returns the resulting dynamic value tree (§4.6).
func Read(r *binary.Reader, nodes []Node) (Value, error) {
	if len(nodes) == 0 {
		return Value{}, fmt.Errorf("%w: empty type tree", errs.ErrInvalidValue)
	}

	v, _, err := readNode(r, nodes, 0)

	return v, err
}

// subtreeEnd returns the index just past node i's entire subtree: the
// first following node whose Level is not greater than nodes[i].Level.
func subtreeEnd(nodes []Node, i int) int {
	level := nodes[i].Level
	end := i + 1
	for end < len(nodes) && nodes[end].Level > level {
		end++
	}

	return end
}

func readNode(r *binary.Reader, nodes []Node, i int) (Value, int, error) {
	n := nodes[i]
	end := subtreeEnd(nodes, i)

	var (
		v   Value
		err error
	)

	switch {
	case isPrimitive(n.TypeName):
		v, err = readPrimitive(r, n.TypeName)
	case n.TypeName == "string":
		s, e := r.AlignedString()
		v, err = Value{Kind: KindString, Str: s}, e
		// The string node is followed by its Array/data children nodes in
		// the schema but those bytes were already consumed by AlignedString;
		// skip them in the node index (§4.6: "advance the iteration index
		// by three nodes").
		end = i + 3
		if end > len(nodes) {
			end = len(nodes)
		}
	case n.TypeName == "map":
		v, err = readMap(r, nodes, i, end)
	case n.TypeName == "TypelessData":
		length, e := r.I32()
		if e != nil {
			err = e
			break
		}
		b, e := r.ReadBytesCopy(int(length))
		v, err = Value{Kind: KindBytes, Bytes: b}, e
		end = i + 2
		if end > len(nodes) {
			end = len(nodes)
		}
	case i+1 < end && nodes[i+1].TypeName == "Array":
		v, err = readArray(r, nodes, i, end)
	default:
		v, err = readStruct(r, nodes, i, end)
	}

	if err == nil && n.Aligned() {
		err = r.Align(4)
	}

	return v, end, err
}

func readMap(r *binary.Reader, nodes []Node, i, end int) (Value, error) {
	count, err := r.I32()
	if err != nil {
		return Value{}, fmt.Errorf("typetree: map count: %w", err)
	}
	if count < 0 {
		return Value{}, fmt.Errorf("%w: negative map count", errs.ErrInvalidValue)
	}

	// nodes[i+1] is the synthetic "Array" node; nodes[i+2] is the pair
	// struct schema (its children are named "first" and "second").
	pairIdx := i + 2
	if pairIdx >= end {
		return Value{}, fmt.Errorf("%w: map node missing pair schema", errs.ErrInvalidValue)
	}

	entries := make([]MapEntry, count)
	for k := int32(0); k < count; k++ {
		pair, _, err := readNode(r, nodes, pairIdx)
		if err != nil {
			return Value{}, fmt.Errorf("typetree: map entry %d: %w", k, err)
		}

		key, _ := pair.Field("first")
		val, _ := pair.Field("second")
		entries[k] = MapEntry{Key: key, Value: val}
	}

	return Value{Kind: KindMap, Map: entries}, nil
}

func readArray(r *binary.Reader, nodes []Node, i, end int) (Value, error) {
	count, err := r.I32()
	if err != nil {
		return Value{}, fmt.Errorf("typetree: array count: %w", err)
	}
	if count < 0 {
		return Value{}, fmt.Errorf("%w: negative array count", errs.ErrInvalidValue)
	}

	elemIdx := i + 2
	if elemIdx >= end {
		return Value{}, fmt.Errorf("%w: array node missing element schema", errs.ErrInvalidValue)
	}

	items := make([]Value, count)
	for k := int32(0); k < count; k++ {
		item, _, err := readNode(r, nodes, elemIdx)
		if err != nil {
			return Value{}, fmt.Errorf("typetree: array element %d: %w", k, err)
		}
		items[k] = item
	}

	return Value{Kind: KindArray, Array: items}, nil
}

func readStruct(r *binary.Reader, nodes []Node, i, end int) (Value, error) {
	fields := make(map[string]Value, end-i-1)

	child := i + 1
	for child < end {
		v, next, err := readNode(r, nodes, child)
		if err != nil {
			return Value{}, fmt.Errorf("typetree: field %q: %w", nodes[child].FieldName, err)
		}
		fields[nodes[child].FieldName] = v
		child = next
	}

	return Value{Kind: KindStruct, Struct: fields}, nil
}

func isPrimitive(typeName string) bool {
	switch typeName {
	case "SInt8", "UInt8", "char",
		"short", "UInt16",
		"int", "UInt32", "Type*",
		"long long", "UInt64", "FileSize",
		"float", "double", "bool":
		return true
	default:
		return false
	}
}

func readPrimitive(r *binary.Reader, typeName string) (Value, error) {
	switch typeName {
	case "SInt8", "UInt8", "char":
		b, err := r.U8()
		return Value{Kind: KindU64, U64: uint64(b)}, err
	case "short":
		v, err := r.I16()
		return Value{Kind: KindI64, I64: int64(v)}, err
	case "UInt16":
		v, err := r.U16()
		return Value{Kind: KindU64, U64: uint64(v)}, err
	case "int", "Type*":
		v, err := r.I32()
		return Value{Kind: KindI64, I64: int64(v)}, err
	case "UInt32":
		v, err := r.U32()
		return Value{Kind: KindU64, U64: uint64(v)}, err
	case "long long":
		v, err := r.I64()
		return Value{Kind: KindI64, I64: v}, err
	case "UInt64", "FileSize":
		v, err := r.U64()
		return Value{Kind: KindU64, U64: v}, err
	case "float":
		v, err := r.F32()
		return Value{Kind: KindF64, F64: float64(v)}, err
	case "double":
		v, err := r.F64()
		return Value{Kind: KindF64, F64: v}, err
	case "bool":
		v, err := r.Bool()
		return Value{Kind: KindBool, Bool: v}, err
	default:
		return Value{}, fmt.Errorf("%w: not a primitive type %q", errs.ErrInvalidValue, typeName)
	}
}
