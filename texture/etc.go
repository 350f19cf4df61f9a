package texture

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
)

// etcBlock is a decoded 4x4 block in row-major order, RGBA8 per pixel.
type etcBlock [16][4]uint8

func clampByte(n int32) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

func applyDelta(base uint8, delta int32) uint8 {
	return clampByte(int32(base) + delta)
}

func decodeETC1Block(data []byte, out *etcBlock) {
	code := [2]uint8{data[3] >> 5, (data[3] >> 2) & 0x07}
	table := etc1Subblocks[data[3]&0x01]

	var c [2][3]uint8
	if data[3]&2 != 0 {
		c[0][0] = data[0] & 0xf8
		c[0][1] = data[1] & 0xf8
		c[0][2] = data[2] & 0xf8
		c[1][0] = uint8(int32(c[0][0]) + int32(data[0]<<3&0x18) - int32(data[0]<<3&0x20))
		c[1][1] = uint8(int32(c[0][1]) + int32(data[1]<<3&0x18) - int32(data[1]<<3&0x20))
		c[1][2] = uint8(int32(c[0][2]) + int32(data[2]<<3&0x18) - int32(data[2]<<3&0x20))
		for i := range c[0] {
			c[0][i] |= c[0][i] >> 5
		}
		for i := range c[1] {
			c[1][i] |= c[1][i] >> 5
		}
	} else {
		c[0][0] = (data[0] & 0xf0) | data[0]>>4
		c[1][0] = (data[0] & 0x0f) | data[0]<<4
		c[0][1] = (data[1] & 0xf0) | data[1]>>4
		c[1][1] = (data[1] & 0x0f) | data[1]<<4
		c[0][2] = (data[2] & 0xf0) | data[2]>>4
		c[1][2] = (data[2] & 0x0f) | data[2]<<4
	}

	j := uint16(data[6])<<8 | uint16(data[7])
	k := uint16(data[4])<<8 | uint16(data[5])
	for i := 0; i < 16; i++ {
		s := table[i]
		m := etc1Modifiers[code[s]][j&1]
		if k&1 != 0 {
			m = -m
		}
		out[writeOrder[i]] = [4]uint8{applyDelta(c[s][0], m), applyDelta(c[s][1], m), applyDelta(c[s][2], m), 255}
		j >>= 1
		k >>= 1
	}
}

// decodeETC2Block decodes an ETC2 RGB sub-block, dispatching between the
// differential, T, H, and planar modes per the standard's delta-overflow
// detection (ground truth: yuanyan3060/unity-rs's etc.rs decode_etc2_block).
func decodeETC2Block(data []byte, out *etcBlock) {
	j := uint32(data[6])<<8 | uint32(data[7])
	k := uint32(data[4])<<8 | uint32(data[5])

	if data[3]&2 == 0 {
		decodeETC1LikeBlock(data, j, k, out)
		return
	}

	r := data[0] & 0xf8
	dr := int16(data[0])<<3&0x18 - int16(data[0])<<3&0x20
	g := data[1] & 0xf8
	dg := int16(data[1])<<3&0x18 - int16(data[1])<<3&0x20
	b := data[2] & 0xf8
	db := int16(data[2])<<3&0x18 - int16(data[2])<<3&0x20

	switch {
	case int16(r)+dr < 0 || int16(r)+dr > 255:
		decodeETC2TBlock(data, j, k, out)
	case int16(g)+dg < 0 || int16(g)+dg > 255:
		decodeETC2HBlock(data, j, k, out)
	case int16(b)+db < 0 || int16(b)+db > 255:
		decodeETC2PlanarBlock(data, out)
	default:
		decodeETC2DifferentialBlock(data, r, dr, g, dg, b, db, j, k, out)
	}
}

func decodeETC1LikeBlock(data []byte, j, k uint32, out *etcBlock) {
	code := [2]uint8{data[3] >> 5, (data[3] >> 2) & 0x07}
	table := etc1Subblocks[data[3]&0x01]

	var c [2][3]uint8
	c[0][0] = (data[0] & 0xf0) | data[0]>>4
	c[1][0] = (data[0] & 0x0f) | data[0]<<4
	c[0][1] = (data[1] & 0xf0) | data[1]>>4
	c[1][1] = (data[1] & 0x0f) | data[1]<<4
	c[0][2] = (data[2] & 0xf0) | data[2]>>4
	c[1][2] = (data[2] & 0x0f) | data[2]<<4

	applyModifierBlock(c, code, table, j, k, out)
}

func decodeETC2DifferentialBlock(data []byte, r uint8, dr int16, g uint8, dg int16, b uint8, db int16, j, k uint32, out *etcBlock) {
	code := [2]uint8{data[3] >> 5, (data[3] >> 2) & 0x07}
	table := etc1Subblocks[data[3]&0x01]

	var c [2][3]uint8
	c[0][0] = r | r>>5
	c[0][1] = g | g>>5
	c[0][2] = b | b>>5
	c[1][0] = applyDelta16(r, dr)
	c[1][1] = applyDelta16(g, dg)
	c[1][2] = applyDelta16(b, db)
	c[1][0] |= c[1][0] >> 5
	c[1][1] |= c[1][1] >> 5
	c[1][2] |= c[1][2] >> 5

	applyModifierBlock(c, code, table, j, k, out)
}

func applyDelta16(base uint8, delta int16) uint8 {
	return uint8(int16(base) + delta)
}

func applyModifierBlock(c [2][3]uint8, code [2]uint8, table [16]uint8, j, k uint32, out *etcBlock) {
	for i := 0; i < 16; i++ {
		s := table[i]
		m := etc1Modifiers[code[s]][j&0x01]
		if k&0x01 != 0 {
			m = -m
		}
		out[writeOrder[i]] = [4]uint8{applyDelta(c[s][0], m), applyDelta(c[s][1], m), applyDelta(c[s][2], m), 255}
		j >>= 1
		k >>= 1
	}
}

func decodeETC2TBlock(data []byte, j, k uint32, out *etcBlock) {
	var c [2][3]uint8
	c[0][0] = (data[0] << 3 & 0xc0) | (data[0] << 4 & 0x30) | (data[0] >> 1 & 0xc) | (data[0] & 3)
	c[0][1] = (data[1] & 0xf0) | data[1]>>4
	c[0][2] = (data[1] & 0x0f) | data[1]<<4
	c[1][0] = (data[2] & 0xf0) | data[2]>>4
	c[1][1] = (data[2] & 0x0f) | data[2]<<4
	c[1][2] = (data[3] & 0xf0) | data[3]>>4
	d := etc2Distances[(data[3]>>1)&6|(data[3]&1)]

	colorSet := [4][4]uint8{
		{c[0][0], c[0][1], c[0][2], 255},
		{applyDelta(c[1][0], d), applyDelta(c[1][1], d), applyDelta(c[1][2], d), 255},
		{c[1][0], c[1][1], c[1][2], 255},
		{applyDelta(c[1][0], -d), applyDelta(c[1][1], -d), applyDelta(c[1][2], -d), 255},
	}

	k <<= 1
	for i := 0; i < 16; i++ {
		out[writeOrder[i]] = colorSet[(k&0x02)|(j&0x01)]
		j >>= 1
		k >>= 1
	}
}

func decodeETC2HBlock(data []byte, j, k uint32, out *etcBlock) {
	var c [2][3]uint8
	c[0][0] = (data[0] << 1 & 0xf0) | (data[0] >> 3 & 0xf)
	c[0][1] = (data[0]<<5&0xe0 | data[1]&0x10)
	c[0][1] |= c[0][1] >> 4
	c[0][2] = (data[1] & 8) | (data[1] << 1 & 6) | data[2]>>7
	c[0][2] |= c[0][2] << 4
	c[1][0] = (data[2] << 1 & 0xf0) | (data[2] >> 3 & 0xf)
	c[1][1] = (data[2]<<5&0xe0 | data[3]>>3&0x10)
	c[1][1] |= c[1][1] >> 4
	c[1][2] = (data[3] << 1 & 0xf0) | (data[3] >> 3 & 0xf)

	d := (data[3] & 4) | (data[3] << 1 & 2)
	if c[0][0] > c[1][0] || (c[0][0] == c[1][0] && (c[0][1] > c[1][1] || (c[0][1] == c[1][1] && c[0][2] >= c[1][2]))) {
		d++
	}
	dist := etc2Distances[d]

	colorSet := [4][4]uint8{
		{applyDelta(c[0][0], dist), applyDelta(c[0][1], dist), applyDelta(c[0][2], dist), 255},
		{applyDelta(c[0][0], -dist), applyDelta(c[0][1], -dist), applyDelta(c[0][2], -dist), 255},
		{applyDelta(c[1][0], dist), applyDelta(c[1][1], dist), applyDelta(c[1][2], dist), 255},
		{applyDelta(c[1][0], -dist), applyDelta(c[1][1], -dist), applyDelta(c[1][2], -dist), 255},
	}

	k <<= 1
	for i := 0; i < 16; i++ {
		out[writeOrder[i]] = colorSet[(k&0x02)|(j&0x01)]
		j >>= 1
		k >>= 1
	}
}

func decodeETC2PlanarBlock(data []byte, out *etcBlock) {
	var c [3][3]uint8
	c[0][0] = (data[0] << 1 & 0xfc) | (data[0] >> 5 & 3)
	c[0][1] = (data[0]<<7&0x80 | data[1]&0x7e | data[0]&1)
	c[0][2] = (data[1]<<7&0x80 | data[2]<<2&0x60 | data[2]<<3&0x18 | data[3]>>5&4)
	c[0][2] |= c[0][2] >> 6
	c[1][0] = (data[3] << 1 & 0xf8) | (data[3] << 2 & 4) | (data[3] >> 5 & 3)
	c[1][1] = (data[4]&0xfe | data[4]>>7)
	c[1][2] = (data[4]<<7&0x80 | data[5]>>1&0x7c)
	c[1][2] |= c[1][2] >> 6
	c[2][0] = (data[5]<<5&0xe0 | data[6]>>3&0x1c | data[5]>>1&3)
	c[2][1] = (data[6]<<3&0xf8 | data[7]>>5&0x6 | data[6]>>4&1)
	c[2][2] = data[7]<<2 | (data[7] >> 4 & 3)

	i := 0
	for y := int32(0); y < 4; y++ {
		for x := int32(0); x < 4; x++ {
			r := clampByte((x*(int32(c[1][0])-int32(c[0][0])) + y*(int32(c[2][0])-int32(c[0][0])) + 4*int32(c[0][0]) + 2) >> 2)
			g := clampByte((x*(int32(c[1][1])-int32(c[0][1])) + y*(int32(c[2][1])-int32(c[0][1])) + 4*int32(c[0][1]) + 2) >> 2)
			bl := clampByte((x*(int32(c[1][2])-int32(c[0][2])) + y*(int32(c[2][2])-int32(c[0][2])) + 4*int32(c[0][2]) + 2) >> 2)
			out[i] = [4]uint8{r, g, bl, 255}
			i++
		}
	}
}

// decodeETC2AlphaBlock decodes the 8-byte alpha sub-block prefixed to an
// ETC2_RGBA8 block, writing straight into out's alpha channel.
func decodeETC2AlphaBlock(data []byte, out *etcBlock) {
	if data[1]&0xf0 != 0 {
		multiplier := int32(data[1] >> 4)
		table := etc2AlphaMods[data[1]&0xf]
		l := uint64(data[0])<<56 | uint64(data[1])<<48 | uint64(data[2])<<40 | uint64(data[3])<<32 |
			uint64(data[4])<<24 | uint64(data[5])<<16 | uint64(data[6])<<8 | uint64(data[7])
		for i := 0; i < 16; i++ {
			raw := int32(data[0]) + multiplier*table[l&0x7]
			out[writeOrderRev[i]][3] = clampByte(raw)
			l >>= 3
		}
	} else {
		for i := range out {
			out[i][3] = data[0]
		}
	}
}

func blocksAcross(dim int) int { return (dim + 3) / 4 }

// blitBlock writes a decoded 4x4 block at (bx,by) into a width*height
// RGBA8 image in row-major top-down order, truncating at the right/bottom
// edges when the image dimensions aren't multiples of 4 (§4.8).
func blitBlock(img []byte, width, height, bx, by int, block *etcBlock) {
	x0 := bx * 4
	y0 := by * 4
	xn := 4
	if x0+xn > width {
		xn = width - x0
	}
	yn := 4
	if y0+yn > height {
		yn = height - y0
	}

	for y := 0; y < yn; y++ {
		row := (y0 + y) * width
		for x := 0; x < xn; x++ {
			px := block[y*4+x]
			off := (row + x0 + x) * 4
			img[off], img[off+1], img[off+2], img[off+3] = px[0], px[1], px[2], px[3]
		}
	}
}

func decodeBlockFormat(data []byte, width, height, blockBytes int, decode func(block []byte, out *etcBlock)) ([]byte, error) {
	bx := blocksAcross(width)
	by := blocksAcross(height)
	need := bx * by * blockBytes
	if len(data) < need {
		return nil, fmt.Errorf("%w: need %d bytes for %dx%d blocks, got %d", errs.ErrInvalidValue, need, bx, by, len(data))
	}

	img := make([]byte, width*height*4)
	var block etcBlock
	offset := 0
	for y := 0; y < by; y++ {
		for x := 0; x < bx; x++ {
			decode(data[offset:offset+blockBytes], &block)
			blitBlock(img, width, height, x, y, &block)
			offset += blockBytes
		}
	}

	return img, nil
}

func decodeETCRGB4(data []byte, width, height int) ([]byte, error) {
	return decodeBlockFormat(data, width, height, 8, decodeETC1Block)
}

func decodeETC2RGB(data []byte, width, height int) ([]byte, error) {
	return decodeBlockFormat(data, width, height, 8, decodeETC2Block)
}

func decodeETC2RGBA8(data []byte, width, height int) ([]byte, error) {
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
			decodeETC2Block(data[offset+8:offset+16], &block)
			decodeETC2AlphaBlock(data[offset:offset+8], &block)
			blitBlock(img, width, height, x, y, &block)
			offset += blockBytes
		}
	}

	return img, nil
}
