package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/format"
)

// Texture2D is the decoded header of a Unity Texture2D object (§4.7); its
// pixel data is decoded on demand by package texture via DecodeImage.
type Texture2D struct {
	Name string

	Width             int32
	Height            int32
	CompleteImageSize int32
	Format            format.TextureFormat
	MipCount          int32

	FilterMode int32
	Aniso      int32
	MipBias    float32
	WrapMode   int32

	ImageData []byte
}

func readTexture2D(r *binary.Reader, uv format.Version, b *bundle.Bundle) (Texture2D, error) {
	var t Texture2D

	var err error
	if t.Name, err = r.AlignedString(); err != nil {
		return t, fmt.Errorf("texture2d name: %w", err)
	}

	if uv.AtLeast(2017, 3) {
		if _, err = r.I32(); err != nil { // forced_fallback_format
			return t, fmt.Errorf("texture2d forced fallback format: %w", err)
		}
		if _, err = r.Bool(); err != nil { // downscale_fallback
			return t, fmt.Errorf("texture2d downscale fallback: %w", err)
		}
	}
	if uv.AtLeast(2020, 2) {
		if _, err = r.Bool(); err != nil { // is_alpha_channel_optional
			return t, fmt.Errorf("texture2d alpha channel optional: %w", err)
		}
	}
	if err := r.Align(4); err != nil {
		return t, fmt.Errorf("texture2d align after flags: %w", err)
	}

	if t.Width, err = r.I32(); err != nil {
		return t, fmt.Errorf("texture2d width: %w", err)
	}
	if t.Height, err = r.I32(); err != nil {
		return t, fmt.Errorf("texture2d height: %w", err)
	}
	if t.CompleteImageSize, err = r.I32(); err != nil {
		return t, fmt.Errorf("texture2d complete image size: %w", err)
	}
	if uv.AtLeast(2020) {
		if _, err = r.I32(); err != nil { // mips_stripped
			return t, fmt.Errorf("texture2d mips stripped: %w", err)
		}
	}

	formatVal, err := r.I32()
	if err != nil {
		return t, fmt.Errorf("texture2d format: %w", err)
	}
	t.Format = format.TextureFormat(formatVal)

	if uv.Less(5, 2) {
		mipmap, err := r.Bool()
		if err != nil {
			return t, fmt.Errorf("texture2d mipmap: %w", err)
		}
		if mipmap {
			t.MipCount = -1 // unknown count, only "has mipmaps" was recorded
		} else {
			t.MipCount = 1
		}
	} else {
		if t.MipCount, err = r.I32(); err != nil {
			return t, fmt.Errorf("texture2d mip count: %w", err)
		}
	}

	if uv.AtLeast(2, 6) {
		if _, err = r.Bool(); err != nil { // is_readable
			return t, fmt.Errorf("texture2d is readable: %w", err)
		}
	}
	if uv.AtLeast(2020) {
		if _, err = r.Bool(); err != nil { // is_pre_processed
			return t, fmt.Errorf("texture2d pre-processed: %w", err)
		}
	}
	if uv.AtLeast(2019, 3) {
		if _, err = r.Bool(); err != nil { // ignore_master_texture_limit
			return t, fmt.Errorf("texture2d ignore master limit: %w", err)
		}
	}
	if uv.AtLeast(3) && uv.Less(5, 5) {
		if _, err = r.Bool(); err != nil { // read_allowed
			return t, fmt.Errorf("texture2d read allowed: %w", err)
		}
	}
	if uv.AtLeast(2018, 2) {
		if _, err = r.Bool(); err != nil { // streaming_mipmaps
			return t, fmt.Errorf("texture2d streaming mipmaps: %w", err)
		}
	}
	if err := r.Align(4); err != nil {
		return t, fmt.Errorf("texture2d align after bool flags: %w", err)
	}
	if uv.AtLeast(2018, 2) {
		if _, err = r.I32(); err != nil { // streaming_mipmaps_priority
			return t, fmt.Errorf("texture2d streaming mipmaps priority: %w", err)
		}
	}

	if _, err = r.I32(); err != nil { // image_count
		return t, fmt.Errorf("texture2d image count: %w", err)
	}
	if _, err = r.I32(); err != nil { // texture_dimension
		return t, fmt.Errorf("texture2d dimension: %w", err)
	}

	if t.FilterMode, err = r.I32(); err != nil {
		return t, fmt.Errorf("texture2d filter mode: %w", err)
	}
	if t.Aniso, err = r.I32(); err != nil {
		return t, fmt.Errorf("texture2d aniso: %w", err)
	}
	if t.MipBias, err = r.F32(); err != nil {
		return t, fmt.Errorf("texture2d mip bias: %w", err)
	}
	if t.WrapMode, err = r.I32(); err != nil {
		return t, fmt.Errorf("texture2d wrap mode: %w", err)
	}
	if uv.AtLeast(2017) {
		if _, err = r.I32(); err != nil { // wrap_v
			return t, fmt.Errorf("texture2d wrap v: %w", err)
		}
		if _, err = r.I32(); err != nil { // wrap_w
			return t, fmt.Errorf("texture2d wrap w: %w", err)
		}
	}

	if uv.AtLeast(3) {
		if _, err = r.I32(); err != nil { // light_map_format
			return t, fmt.Errorf("texture2d light map format: %w", err)
		}
	}
	if uv.AtLeast(3, 5) {
		if _, err = r.I32(); err != nil { // color_space
			return t, fmt.Errorf("texture2d color space: %w", err)
		}
	}
	if uv.AtLeast(2020, 2) {
		n, err := r.I32()
		if err != nil {
			return t, fmt.Errorf("texture2d platform blob length: %w", err)
		}
		if _, err := r.ReadBytes(int(n)); err != nil {
			return t, fmt.Errorf("texture2d platform blob: %w", err)
		}
		if err := r.Align(4); err != nil {
			return t, fmt.Errorf("texture2d align after platform blob: %w", err)
		}
	}

	size, err := r.I32()
	if err != nil {
		return t, fmt.Errorf("texture2d size: %w", err)
	}

	if size == 0 && uv.AtLeast(5, 3) {
		si, err := readStreamingInfo(r)
		if err != nil {
			return t, fmt.Errorf("texture2d streaming info: %w", err)
		}
		data, err := resolveStreamed(b, si)
		if err != nil {
			return t, err
		}
		t.ImageData = data
	} else {
		data, err := r.ReadBytesCopy(int(size))
		if err != nil {
			return t, fmt.Errorf("texture2d image data: %w", err)
		}
		t.ImageData = data
	}

	return t, nil
}
