package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// rgba32Bottomup builds width*height RGBA32 source pixels in Unity's
// bottom-up row order, row i colored (0,0,0,i) so the flip can be checked
// by alpha value alone.
func rgba32Bottomup(width, height int) []byte {
	data := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			off := (row*width + col) * 4
			data[off+3] = byte(row)
		}
	}
	return data
}

func TestDecode_FlipsBottomUpToTopDown(t *testing.T) {
	const w, h = 4, 3
	src := rgba32Bottomup(w, h)

	img, err := Decode(format.TextureFormatRGBA32, src, w, h)
	require.NoError(t, err)
	require.Len(t, img, w*h*4)

	// Row 0 of src (bottom of the texture, alpha 0) must land at the last
	// output row (top-down, §4.8 step 4); row h-1 (alpha h-1) lands first.
	assert.Equal(t, byte(h-1), img[3])
	assert.Equal(t, byte(0), img[(h-1)*w*4+3])
}

func TestDecode_ZeroSizeRejected(t *testing.T) {
	_, err := Decode(format.TextureFormatRGBA32, nil, 0, 4)
	require.ErrorIs(t, err, errs.ErrZeroSizeImage)
}

func TestDecode_UnimplementedFormat(t *testing.T) {
	_, err := Decode(format.TextureFormat(-1), []byte{1, 2, 3, 4}, 1, 1)
	require.ErrorIs(t, err, errs.ErrUnimplemented)
}

func TestDecode_RejectsShortBuffer(t *testing.T) {
	_, err := Decode(format.TextureFormatRGBA32, []byte{1, 2, 3}, 1, 1)
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestDecodeChunked_MatchesSequentialDecode(t *testing.T) {
	const w, h = 16, 9 // odd height exercises the remainder-row worker
	src := rgba32Bottomup(w, h)

	sequential, err := Decode(format.TextureFormatRGBA32, src, w, h)
	require.NoError(t, err)

	chunked, err := DecodeChunked(format.TextureFormatRGBA32, src, w, h)
	require.NoError(t, err)

	assert.Equal(t, sequential, chunked)
}

func TestDecodeChunked_FallsBackForBlockCompressed(t *testing.T) {
	assert.False(t, rowDecodable(format.TextureFormatETCRGB4))
	assert.False(t, rowDecodable(format.TextureFormatASTC_RGBA_4x4))
	assert.True(t, rowDecodable(format.TextureFormatRGBA32))
}
