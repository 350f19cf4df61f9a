package classes

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binaryr "github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

func cstrPad(s string) []byte {
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(s)))
	buf = append(buf, []byte(s)...)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func TestReadGameObject(t *testing.T) {
	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, 1) // component count
	buf = binary.BigEndian.AppendUint32(buf, 2) // pptr file_id
	buf = binary.BigEndian.AppendUint64(buf, 42) // pptr path_id (format >= 14)
	buf = binary.BigEndian.AppendUint32(buf, 5) // layer
	buf = append(buf, cstrPad("Player")...)

	r := binaryr.NewReader(buf, binaryr.BigEndian)
	g, err := readGameObject(r, 17, format.ParseVersion("2019.4.1f1"))
	require.NoError(t, err)

	assert.Equal(t, "Player", g.Name)
	assert.Equal(t, int32(5), g.Layer)
	require.Len(t, g.Components, 1)
	assert.Equal(t, int32(2), g.Components[0].FileID)
	assert.Equal(t, int64(42), g.Components[0].PathID)
}

func TestReadComponent(t *testing.T) {
	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, 7)

	r := binaryr.NewReader(buf, binaryr.BigEndian)
	c, err := readComponent(r, 17)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.GameObject.PathID)
}

func TestReadTransform(t *testing.T) {
	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, 1) // game object pptr

	for _, v := range []float32{0, 0, 0, 1} { // rotation quaternion identity
		buf = appendF32(buf, v)
	}
	for _, v := range []float32{1, 2, 3} { // position
		buf = appendF32(buf, v)
	}
	for _, v := range []float32{1, 1, 1} { // scale
		buf = appendF32(buf, v)
	}

	buf = binary.BigEndian.AppendUint32(buf, 0) // no children

	buf = binary.BigEndian.AppendUint32(buf, 0) // father pptr
	buf = binary.BigEndian.AppendUint64(buf, 0)

	r := binaryr.NewReader(buf, binaryr.BigEndian)
	tr, err := readTransform(r, 17)
	require.NoError(t, err)

	assert.Equal(t, int64(1), tr.GameObject.PathID)
	assert.Equal(t, [3]float32{1, 2, 3}, tr.LocalPosition)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, tr.LocalRotation)
	assert.Empty(t, tr.Children)
	assert.True(t, tr.Father.IsNull())
}

func appendF32(buf []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(buf, math.Float32bits(v))
}
