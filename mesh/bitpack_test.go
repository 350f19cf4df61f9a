package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/errs"
)

func TestBitReader_ReadsLSBFirstAcrossByteBoundary(t *testing.T) {
	// 0b1011_0010: low 4 bits = 0b0010 = 2, next 4 bits = 0b1011 = 11.
	br := bitReader{data: []byte{0xB2}}

	v, err := br.read(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	v, err = br.read(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(11), v)
}

func TestBitReader_PastEnd(t *testing.T) {
	br := bitReader{data: []byte{0x01}}
	_, err := br.read(16)
	require.ErrorIs(t, err, errs.ErrEndOfInput)
}

func TestUnpackFloatVector_RescalesToRange(t *testing.T) {
	// 2-bit values, max raw 3: raw 0 -> Start, raw 3 -> Start+Range.
	p := classes.PackedFloatVector{
		NumItems: 2,
		Range:    10,
		Start:    5,
		BitSize:  2,
		Data:     []byte{0b0000_0011}, // item0=0b11=3, item1=0b00=0
	}

	out, err := unpackFloatVector(p)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, float32(15), out[0], 1e-6)
	assert.InDelta(t, float32(5), out[1], 1e-6)
}

func TestUnpackFloatVector_ZeroItems(t *testing.T) {
	out, err := unpackFloatVector(classes.PackedFloatVector{NumItems: 0})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUnpackFloatVector_RejectsBadBitSize(t *testing.T) {
	_, err := unpackFloatVector(classes.PackedFloatVector{NumItems: 1, BitSize: 0})
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	_, err = unpackFloatVector(classes.PackedFloatVector{NumItems: 1, BitSize: 33})
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestUnpackIntVector_NoRescale(t *testing.T) {
	p := classes.PackedIntVector{
		NumItems: 2,
		BitSize:  4,
		Data:     []byte{0xA5}, // item0 = low nibble 0x5, item1 = high nibble 0xA
	}

	out, err := unpackIntVector(p)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x5, 0xA}, out)
}

func TestUnpackIntVector_RejectsBadBitSize(t *testing.T) {
	_, err := unpackIntVector(classes.PackedIntVector{NumItems: 1, BitSize: 0})
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}
