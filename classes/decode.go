package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/texture"
)

// DecodeImage decodes t's raw pixel data into a tightly packed, top-down
// RGBA8 buffer of Width*Height*4 bytes (§4.8). ImageData is resolved
// eagerly at parse time (streamed or inline), so decoding needs nothing
// beyond the Texture2D itself.
func (t Texture2D) DecodeImage() ([]byte, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("%w: texture2d %q is %dx%d", errs.ErrZeroSizeImage, t.Name, t.Width, t.Height)
	}
	if len(t.ImageData) == 0 {
		return nil, fmt.Errorf("%w: texture2d %q has no resolved image data", errs.ErrStreamingDataMissing, t.Name)
	}

	img, err := texture.Decode(t.Format, t.ImageData, int(t.Width), int(t.Height))
	if err != nil {
		return nil, fmt.Errorf("texture2d %q: %w", t.Name, err)
	}

	return img, nil
}

// DecodeImage resolves s's backing Texture2D through res and crops it to
// the sprite's texture_rect (§4.7). PPtr resolution uses the narrower
// Resolver interface rather than a concrete Environment so that package
// classes never needs to import package env.
func (s Sprite) DecodeImage(res Resolver) ([]byte, error) {
	tex, ok := s.RD.Texture.Get(res)
	if !ok {
		return nil, fmt.Errorf("%w: sprite %q texture (path id %d)", errs.ErrObjectNotFound, s.Name, s.RD.Texture.PathID)
	}

	full, err := tex.DecodeImage()
	if err != nil {
		return nil, fmt.Errorf("sprite %q: %w", s.Name, err)
	}

	x0 := int(s.RD.TextureRect[0])
	w := int(s.RD.TextureRect[2])
	h := int(s.RD.TextureRect[3])
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: sprite %q rect is %dx%d", errs.ErrZeroSizeImage, s.Name, w, h)
	}
	yBottom := int(s.RD.TextureRect[1])
	if x0 < 0 || yBottom < 0 {
		return nil, fmt.Errorf("%w: sprite %q rect origin (%d,%d) is negative", errs.ErrInvalidValue, s.Name, x0, yBottom)
	}
	if x0 >= int(tex.Width) || yBottom >= int(tex.Height) {
		return nil, fmt.Errorf("%w: sprite %q rect origin (%d,%d) outside texture %dx%d",
			errs.ErrInvalidValue, s.Name, x0, yBottom, tex.Width, tex.Height)
	}
	// Clamp to the source texture's dimensions (§8 testable property 3)
	// rather than rejecting, matching unity-rs's cut_image: rect_w/rect_h
	// are min()'d against the texture's width/height before cropping.
	if x0+w > int(tex.Width) {
		w = int(tex.Width) - x0
	}
	if yBottom+h > int(tex.Height) {
		h = int(tex.Height) - yBottom
	}
	// texture_rect is stored with a bottom-left origin (Unity's native
	// texture convention); DecodeImage already flipped to top-down, so
	// convert to a top-left row offset before cropping.
	y0 := int(tex.Height) - yBottom - h

	cropped := make([]byte, w*h*4)
	srcStride := int(tex.Width) * 4
	dstStride := w * 4
	for row := 0; row < h; row++ {
		srcOff := (y0+row)*srcStride + x0*4
		dstOff := row * dstStride
		copy(cropped[dstOff:dstOff+dstStride], full[srcOff:srcOff+dstStride])
	}

	return cropped, nil
}
