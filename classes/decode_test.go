package classes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

func TestTexture2D_DecodeImage_RejectsMissingData(t *testing.T) {
	tex := Texture2D{Name: "empty", Width: 4, Height: 4, Format: format.TextureFormatRGBA32}
	_, err := tex.DecodeImage()
	require.ErrorIs(t, err, errs.ErrStreamingDataMissing)
}

func TestTexture2D_DecodeImage_RejectsZeroSize(t *testing.T) {
	tex := Texture2D{Name: "zero", Width: 0, Height: 4, Format: format.TextureFormatRGBA32}
	_, err := tex.DecodeImage()
	require.ErrorIs(t, err, errs.ErrZeroSizeImage)
}

func TestTexture2D_DecodeImage_RGBA32(t *testing.T) {
	raw := make([]byte, 2*2*4)
	for i := range raw {
		raw[i] = byte(i)
	}
	tex := Texture2D{Name: "tiny", Width: 2, Height: 2, Format: format.TextureFormatRGBA32, ImageData: raw}

	img, err := tex.DecodeImage()
	require.NoError(t, err)
	assert.Len(t, img, 16)
}

// stubResolver resolves a single fixed path id to a fixed value, enough to
// exercise Sprite.DecodeImage's PPtr resolution without pulling in env.
type stubResolver struct {
	pathID int64
	value  any
}

func (s stubResolver) FindByPathID(pathID int64) (any, bool) {
	if pathID != s.pathID {
		return nil, false
	}
	return s.value, true
}

func checkerTexture(w, h int) []byte {
	raw := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			off := (row*w + col) * 4
			raw[off] = byte(row)
			raw[off+1] = byte(col)
			raw[off+2] = 0
			raw[off+3] = 255
		}
	}
	return raw
}

func TestSprite_DecodeImage_CropsRect(t *testing.T) {
	const texW, texH = 8, 8
	tex := Texture2D{
		Name: "atlas", Width: texW, Height: texH,
		Format:    format.TextureFormatRGBA32,
		ImageData: checkerTexture(texW, texH),
	}

	s := Sprite{Name: "icon"}
	s.RD.Texture = PPtr[Texture2D]{PathID: 99}
	s.RD.TextureRect = [4]float32{2, 3, 4, 2} // x=2, y(bottom-left)=3, w=4, h=2

	res := stubResolver{pathID: 99, value: tex}

	cropped, err := s.DecodeImage(res)
	require.NoError(t, err)
	assert.Len(t, cropped, 4*2*4)
}

func TestSprite_DecodeImage_MissingTexture(t *testing.T) {
	s := Sprite{Name: "orphan"}
	s.RD.Texture = PPtr[Texture2D]{PathID: 5}
	s.RD.TextureRect = [4]float32{0, 0, 1, 1}

	_, err := s.DecodeImage(stubResolver{pathID: 1})
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSprite_DecodeImage_RectClampedToTextureBounds(t *testing.T) {
	tex := Texture2D{
		Name: "small", Width: 4, Height: 4,
		Format:    format.TextureFormatRGBA32,
		ImageData: checkerTexture(4, 4),
	}

	s := Sprite{Name: "oversized"}
	s.RD.Texture = PPtr[Texture2D]{PathID: 1}
	s.RD.TextureRect = [4]float32{0, 0, 8, 8} // rect bigger than the 4x4 texture

	cropped, err := s.DecodeImage(stubResolver{pathID: 1, value: tex})
	require.NoError(t, err)
	assert.Len(t, cropped, 4*4*4) // clamped down to the full 4x4 texture, not an error
}

func TestSprite_DecodeImage_RectOriginOutsideTexture(t *testing.T) {
	tex := Texture2D{
		Name: "small", Width: 4, Height: 4,
		Format:    format.TextureFormatRGBA32,
		ImageData: checkerTexture(4, 4),
	}

	s := Sprite{Name: "offscreen"}
	s.RD.Texture = PPtr[Texture2D]{PathID: 1}
	s.RD.TextureRect = [4]float32{10, 10, 2, 2}

	_, err := s.DecodeImage(stubResolver{pathID: 1, value: tex})
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}
