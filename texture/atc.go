package texture

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
)

// atcRGB565ToU8 expands a packed 5/6/5 color into an RGB triple.
func atcRGB565ToU8(v uint16) [3]uint8 {
	return [3]uint8{
		expand5to8(uint8(v >> 11)),
		expand6to8(uint8(v >> 5)),
		expand5to8(uint8(v)),
	}
}

func atcLerpThird(a, b uint8, twoA bool) uint8 {
	if twoA {
		return uint8((2*int32(a) + int32(b)) / 3)
	}
	return uint8((int32(a) + 2*int32(b)) / 3)
}

// decodeATCRGBBlock decodes the 8-byte color block shared by ATC_RGB4 and
// the color half of ATC_RGBA8: two RGB565 base colors plus a 2-bit-per-
// texel selector choosing among {color0, color1, 2/3 blend, 1/3 blend}
// (AMD_compressed_ATC_texture).
func decodeATCRGBBlock(data []byte, out *etcBlock) {
	color0 := atcRGB565ToU8(uint16(data[0]) | uint16(data[1])<<8)
	color1 := atcRGB565ToU8(uint16(data[2]) | uint16(data[3])<<8)
	indices := uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24

	var palette [4][3]uint8
	palette[0] = color0
	palette[1] = [3]uint8{
		atcLerpThird(color0[0], color1[0], true),
		atcLerpThird(color0[1], color1[1], true),
		atcLerpThird(color0[2], color1[2], true),
	}
	palette[2] = [3]uint8{
		atcLerpThird(color0[0], color1[0], false),
		atcLerpThird(color0[1], color1[1], false),
		atcLerpThird(color0[2], color1[2], false),
	}
	palette[3] = color1

	for i := 0; i < 16; i++ {
		sel := (indices >> uint(2*i)) & 0x3
		c := palette[sel]
		out[i] = [4]uint8{c[0], c[1], c[2], 255}
	}
}

// decodeDXT5AlphaBlock decodes an 8-byte DXT5-style alpha block (two
// reference alphas plus 3-bit-per-texel interpolation indices), reused
// unmodified by ATC_RGBA8's explicit-alpha half.
func decodeDXT5AlphaBlock(data []byte, out *etcBlock) {
	a0 := data[0]
	a1 := data[1]
	bits := uint64(data[2]) | uint64(data[3])<<8 | uint64(data[4])<<16 |
		uint64(data[5])<<24 | uint64(data[6])<<32 | uint64(data[7])<<40

	var palette [8]uint8
	palette[0] = a0
	palette[1] = a1
	if a0 > a1 {
		for i := uint8(1); i <= 6; i++ {
			palette[i+1] = uint8((uint32(7-i)*uint32(a0) + uint32(i)*uint32(a1)) / 7)
		}
	} else {
		for i := uint8(1); i <= 4; i++ {
			palette[i+1] = uint8((uint32(5-i)*uint32(a0) + uint32(i)*uint32(a1)) / 5)
		}
		palette[6] = 0
		palette[7] = 255
	}

	for i := 0; i < 16; i++ {
		sel := (bits >> uint(3*i)) & 0x7
		out[i][3] = palette[sel]
	}
}

func decodeATCRGB4(data []byte, width, height int) ([]byte, error) {
	return decodeBlockFormat(data, width, height, 8, decodeATCRGBBlock)
}

func decodeATCRGBA8(data []byte, width, height int) ([]byte, error) {
	bx := blocksAcross(width)
	by := blocksAcross(height)
	const blockBytes = 16
	need := bx * by * blockBytes
	if len(data) < need {
		return nil, fmt.Errorf("%w: need %d bytes for %dx%d blocks, got %d", errs.ErrInvalidValue, need, bx, by, len(data))
	}

	img := make([]byte, width*height*4)
	var block etcBlock
	offset := 0
	for y := 0; y < by; y++ {
		for x := 0; x < bx; x++ {
			decodeATCRGBBlock(data[offset+8:offset+16], &block)
			decodeDXT5AlphaBlock(data[offset:offset+8], &block)
			blitBlock(img, width, height, x, y, &block)
			offset += blockBytes
		}
	}

	return img, nil
}
