package binary_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/binary"
)

func TestReader_PrimitiveRoundTrip(t *testing.T) {
	cases := []struct {
		order binary.ByteOrder
		name  string
	}{
		{binary.LittleEndian, "little"},
		{binary.BigEndian, "big"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 0, 64)
			var put func(v uint64, n int)
			if tc.order == binary.LittleEndian {
				put = func(v uint64, n int) {
					for i := 0; i < n; i++ {
						buf = append(buf, byte(v>>(8*i)))
					}
				}
			} else {
				put = func(v uint64, n int) {
					for i := n - 1; i >= 0; i-- {
						buf = append(buf, byte(v>>(8*i)))
					}
				}
			}

			put(0xAB, 1)
			put(0xBEEF, 2)
			put(0xDEADBEEF, 4)
			put(0x0102030405060708, 8)

			r := binary.NewReader(buf, tc.order)
			u8, err := r.U8()
			require.NoError(t, err)
			assert.Equal(t, uint8(0xAB), u8)

			u16, err := r.U16()
			require.NoError(t, err)
			assert.Equal(t, uint16(0xBEEF), u16)

			u32, err := r.U32()
			require.NoError(t, err)
			assert.Equal(t, uint32(0xDEADBEEF), u32)

			u64, err := r.U64()
			require.NoError(t, err)
			assert.Equal(t, uint64(0x0102030405060708), u64)
		})
	}
}

func TestReader_FloatRoundTrip(t *testing.T) {
	buf := make([]byte, 12)
	binaryPutF32(buf[0:4], 3.14159)
	binaryPutF64(buf[4:12], 2.718281828)

	r := binary.NewReader(buf, binary.LittleEndian)
	f32, err := r.F32()
	require.NoError(t, err)
	assert.InDelta(t, float32(3.14159), f32, 1e-6)

	f64, err := r.F64()
	require.NoError(t, err)
	assert.InDelta(t, 2.718281828, f64, 1e-9)
}

func binaryPutF32(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func binaryPutF64(b []byte, v float64) {
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (8 * i))
	}
}

func TestReader_FixedF32_RoundTripBothOrders(t *testing.T) {
	values := []float32{1.5, -2.25, 0, 3.125}

	cases := []struct {
		order binary.ByteOrder
		name  string
	}{
		{binary.LittleEndian, "little"},
		{binary.BigEndian, "big"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 4*len(values))
			for i, v := range values {
				bits := math.Float32bits(v)
				if tc.order == binary.LittleEndian {
					buf[i*4] = byte(bits)
					buf[i*4+1] = byte(bits >> 8)
					buf[i*4+2] = byte(bits >> 16)
					buf[i*4+3] = byte(bits >> 24)
				} else {
					buf[i*4] = byte(bits >> 24)
					buf[i*4+1] = byte(bits >> 16)
					buf[i*4+2] = byte(bits >> 8)
					buf[i*4+3] = byte(bits)
				}
			}

			r := binary.NewReader(buf, tc.order)
			got, err := r.FixedF32(len(values))
			require.NoError(t, err)
			assert.Equal(t, values, got)
			assert.Equal(t, len(buf), r.Offset())
		})
	}
}

func TestReader_F32Vector_EmptyAndLengthPrefixed(t *testing.T) {
	// length prefix 0, no payload bytes follow
	r := binary.NewReader([]byte{0, 0, 0, 0}, binary.BigEndian)
	got, err := r.F32Vector()
	require.NoError(t, err)
	assert.Empty(t, got)

	buf := make([]byte, 4+8)
	buf[3] = 2 // big-endian length prefix: 2
	binaryPutF32BigEndian(buf[4:8], 1.0)
	binaryPutF32BigEndian(buf[8:12], -1.0)

	r = binary.NewReader(buf, binary.BigEndian)
	got, err = r.F32Vector()
	require.NoError(t, err)
	assert.Equal(t, []float32{1.0, -1.0}, got)
}

func binaryPutF32BigEndian(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits >> 24)
	b[1] = byte(bits >> 16)
	b[2] = byte(bits >> 8)
	b[3] = byte(bits)
}

func TestReader_EndOfInput(t *testing.T) {
	r := binary.NewReader([]byte{1, 2}, binary.LittleEndian)
	_, err := r.U32()
	require.Error(t, err)
}

func TestReader_AlignIdempotent(t *testing.T) {
	buf := make([]byte, 16)
	r := binary.NewReader(buf, binary.LittleEndian)
	r.Seek(3)

	require.NoError(t, r.Align(4))
	assert.Equal(t, 4, r.Offset())

	require.NoError(t, r.Align(4))
	assert.Equal(t, 4, r.Offset(), "align must never retreat and must be idempotent")
}

func TestReader_AlignedString_ZeroLengthStillPads(t *testing.T) {
	buf := []byte{0, 0, 0, 0} // length-prefixed empty string
	r := binary.NewReader(buf, binary.BigEndian)

	s, err := r.AlignedString()
	require.NoError(t, err)
	assert.Equal(t, "", s)
	assert.Equal(t, 4, r.Offset())
}

func TestReader_AlignedString_PadsAfterPayload(t *testing.T) {
	// length=3 ("abc"), payload, then 1 pad byte to reach a 4-byte boundary.
	buf := []byte{0, 0, 0, 3, 'a', 'b', 'c', 0xFF}
	r := binary.NewReader(buf, binary.BigEndian)

	s, err := r.AlignedString()
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
	assert.Equal(t, 8, r.Offset())
}

func TestReader_NullTerminatedString(t *testing.T) {
	buf := append([]byte("UnityFS"), 0, 'x')
	r := binary.NewReader(buf, binary.BigEndian)

	s, err := r.NullTerminatedString()
	require.NoError(t, err)
	assert.Equal(t, "UnityFS", s)
	assert.Equal(t, 8, r.Offset())
}

func TestReader_Clone_IsIndependent(t *testing.T) {
	r := binary.NewReader([]byte{1, 2, 3, 4}, binary.LittleEndian)
	_, _ = r.U8()

	c := r.Clone()
	_, _ = c.U8()

	assert.Equal(t, 1, r.Offset())
	assert.Equal(t, 2, c.Offset())
}
