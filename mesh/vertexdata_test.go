package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/errs"
)

func f32le(v float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	return buf
}

func TestLayoutStreams_StrideRoundedToFour(t *testing.T) {
	vd := classes.VertexData{
		Channels: []classes.ChannelInfo{
			{Stream: 0, Offset: 0, Format: 0, Dimension: 3}, // vertex: 3 floats = 12 bytes, already aligned
			{Stream: 0, Offset: 12, Format: 2, Dimension: 1}, // color-ish: +1 byte => 13, rounds to 16
		},
	}

	streams, err := layoutStreams(vd)
	require.NoError(t, err)
	assert.Equal(t, 16, streams[0].stride)
}

func TestReadChannel_TwoVertexPositions(t *testing.T) {
	var data []byte
	data = append(data, f32le(1)...)
	data = append(data, f32le(2)...)
	data = append(data, f32le(3)...)
	data = append(data, f32le(4)...)
	data = append(data, f32le(5)...)
	data = append(data, f32le(6)...)

	vd := classes.VertexData{
		VertexCount: 2,
		Channels: []classes.ChannelInfo{
			{Stream: 0, Offset: 0, Format: 0, Dimension: 3},
		},
		Data: data,
	}

	streams, err := layoutStreams(vd)
	require.NoError(t, err)

	pos, err := readChannel(vd, streams, channelVertex, 2)
	require.NoError(t, err)
	require.Len(t, pos, 2)
	assert.Equal(t, []float32{1, 2, 3}, pos[0])
	assert.Equal(t, []float32{4, 5, 6}, pos[1])
}

func TestReadChannel_AbsentChannelReturnsNil(t *testing.T) {
	vd := classes.VertexData{VertexCount: 1}
	out, err := readChannel(vd, map[uint8]*streamLayout{}, channelNormal, 1)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestReadChannel_OutOfRangeData(t *testing.T) {
	vd := classes.VertexData{
		VertexCount: 1,
		Channels: []classes.ChannelInfo{
			{Stream: 0, Offset: 0, Format: 0, Dimension: 3},
		},
		Data: []byte{0, 0}, // far too short for one float, let alone 3
	}
	streams, err := layoutStreams(vd)
	require.NoError(t, err)

	_, err = readChannel(vd, streams, channelVertex, 1)
	require.ErrorIs(t, err, errs.ErrEndOfInput)
}

func TestComponentSize_UnimplementedFormat(t *testing.T) {
	_, err := componentSize(255)
	require.ErrorIs(t, err, errs.ErrUnimplemented)
}

func TestDecodeComponent_Norm8Variants(t *testing.T) {
	v, err := decodeComponent([]byte{255}, 2) // UNorm8
	require.NoError(t, err)
	assert.InDelta(t, float32(1), v, 1e-6)

	v, err = decodeComponent([]byte{0x81}, 3) // SNorm8, -127 clamps to -1
	require.NoError(t, err)
	assert.Equal(t, float32(-1), v)
}

func TestHalf16ToFloat32_KnownValues(t *testing.T) {
	assert.Equal(t, float32(1), half16ToFloat32(0x3C00))
	assert.Equal(t, float32(0), half16ToFloat32(0x0000))
	assert.Equal(t, float32(-2), half16ToFloat32(0xC000))
}
