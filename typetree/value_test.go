package typetree

import (
	"testing"

	"github.com/go-unity/assetkit/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A minimal two-field struct schema: { int m_Width; int m_Height; }
func structNodes() []Node {
	return []Node{
		{Level: 0, TypeName: "Texture2D", FieldName: "base"},
		{Level: 1, TypeName: "int", FieldName: "m_Width"},
		{Level: 1, TypeName: "int", FieldName: "m_Height"},
	}
}

func TestRead_Struct(t *testing.T) {
	var buf []byte
	buf = appendI32(buf, 64)
	buf = appendI32(buf, 32)

	r := binary.NewReader(buf, binary.BigEndian)
	v, err := Read(r, structNodes())
	require.NoError(t, err)

	w, ok := v.Field("m_Width")
	require.True(t, ok)
	assert.Equal(t, int64(64), w.I64)

	h, ok := v.Field("m_Height")
	require.True(t, ok)
	assert.Equal(t, int64(32), h.I64)
}

func arrayNodes() []Node {
	return []Node{
		{Level: 0, TypeName: "vector", FieldName: "m_Values"},
		{Level: 1, TypeName: "Array", FieldName: "Array"},
		{Level: 2, TypeName: "int", FieldName: "data"},
	}
}

func TestRead_Array(t *testing.T) {
	var buf []byte
	buf = appendI32(buf, 3)
	buf = appendI32(buf, 1)
	buf = appendI32(buf, 2)
	buf = appendI32(buf, 3)

	r := binary.NewReader(buf, binary.BigEndian)
	v, err := Read(r, arrayNodes())
	require.NoError(t, err)
	require.Equal(t, KindArray, v.Kind)
	require.Len(t, v.Array, 3)
	assert.Equal(t, int64(2), v.Array[1].I64)
}

func appendI32(buf []byte, v int32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
