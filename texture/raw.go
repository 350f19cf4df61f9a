package texture

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-unity/assetkit/errs"
)

// decodeUnits validates that data divides evenly into the format's decode
// units and returns the unit count (§4.8 step 1).
func decodeUnits(data []byte, bytesPerUnit, pixelsPerUnit, pixelCount int) (int, error) {
	if bytesPerUnit <= 0 || pixelsPerUnit <= 0 {
		return 0, fmt.Errorf("%w: invalid decode unit geometry", errs.ErrInvalidValue)
	}
	units := len(data) / bytesPerUnit
	if units*pixelsPerUnit != pixelCount {
		return 0, fmt.Errorf("%w: %d decode units of %d px does not cover %d pixels", errs.ErrInvalidValue, units, pixelsPerUnit, pixelCount)
	}
	return units, nil
}

func decodeAlpha8(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 1, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4+3] = data[i]
	}
	return out, nil
}

func decodeR8(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 1, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4] = data[i]
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRG16(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 2, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4] = data[i*2]
		out[i*4+1] = data[i*2+1]
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeR16(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 2, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(data[i*2:])
		out[i*4] = u16ToU8(v)
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRGB24(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 3, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4] = data[i*3]
		out[i*4+1] = data[i*3+1]
		out[i*4+2] = data[i*3+2]
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRGBA32(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 4, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	copy(out, data[:n*4])
	return out, nil
}

func decodeARGB32(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 4, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		a, r, g, b := data[i*4], data[i*4+1], data[i*4+2], data[i*4+3]
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = r, g, b, a
	}
	return out, nil
}

func decodeBGRA32(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 4, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		b, g, r, a := data[i*4], data[i*4+1], data[i*4+2], data[i*4+3]
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = r, g, b, a
	}
	return out, nil
}

func decodeRGB565(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 2, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(data[i*2:])
		r := uint8(v >> 11)
		g := uint8(v >> 5)
		b := uint8(v)
		out[i*4] = expand5to8(r)
		out[i*4+1] = expand6to8(g)
		out[i*4+2] = expand5to8(b)
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeARGB4444(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 2, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(data[i*2:])
		a := uint8(v >> 12)
		r := uint8(v >> 8)
		g := uint8(v >> 4)
		b := uint8(v)
		out[i*4] = expand4to8(r)
		out[i*4+1] = expand4to8(g)
		out[i*4+2] = expand4to8(b)
		out[i*4+3] = expand4to8(a)
	}
	return out, nil
}

func decodeRGBA4444(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 2, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(data[i*2:])
		r := uint8(v >> 12)
		g := uint8(v >> 8)
		b := uint8(v >> 4)
		a := uint8(v)
		out[i*4] = expand4to8(r)
		out[i*4+1] = expand4to8(g)
		out[i*4+2] = expand4to8(b)
		out[i*4+3] = expand4to8(a)
	}
	return out, nil
}

func decodeRFloat(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 4, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		out[i*4] = clampF01ToU8(math.Float32frombits(bits))
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRGFloat(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 8, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		r := binary.LittleEndian.Uint32(data[i*8:])
		g := binary.LittleEndian.Uint32(data[i*8+4:])
		out[i*4] = clampF01ToU8(math.Float32frombits(r))
		out[i*4+1] = clampF01ToU8(math.Float32frombits(g))
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRGBAFloat(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 16, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		for c := 0; c < 4; c++ {
			bits := binary.LittleEndian.Uint32(data[i*16+c*4:])
			out[i*4+c] = clampF01ToU8(math.Float32frombits(bits))
		}
	}
	return out, nil
}

func decodeRHalf(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 2, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4] = halfToU8(binary.LittleEndian.Uint16(data[i*2:]))
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRGHalf(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 4, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4] = halfToU8(binary.LittleEndian.Uint16(data[i*4:]))
		out[i*4+1] = halfToU8(binary.LittleEndian.Uint16(data[i*4+2:]))
		out[i*4+3] = 255
	}
	return out, nil
}

func decodeRGBAHalf(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 8, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		for c := 0; c < 4; c++ {
			out[i*4+c] = halfToU8(binary.LittleEndian.Uint16(data[i*8+c*2:]))
		}
	}
	return out, nil
}

// decodeRGB9e5Float unpacks the shared-exponent format (§4.8): 32-bit word
// laid out exp[5]|b[9]|g[9]|r[9] from high bit to low, scale 2^(exp-24) applied to each
// 9-bit mantissa before float->u8 conversion.
func decodeRGB9e5Float(data []byte, width, height int) ([]byte, error) {
	n := width * height
	if _, err := decodeUnits(data, 4, 1, n); err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		word := binary.LittleEndian.Uint32(data[i*4:])
		r := word & 0x1ff
		g := (word >> 9) & 0x1ff
		b := (word >> 18) & 0x1ff
		exp := (word >> 27) & 0x1f
		scale := pow2(int(exp) - 24)
		out[i*4] = clampF01ToU8(float32(r) * scale)
		out[i*4+1] = clampF01ToU8(float32(g) * scale)
		out[i*4+2] = clampF01ToU8(float32(b) * scale)
		out[i*4+3] = 255
	}
	return out, nil
}

func pow2(e int) float32 {
	if e >= 0 {
		return float32(uint64(1) << uint(e))
	}
	v := float32(1)
	for i := 0; i < -e; i++ {
		v /= 2
	}
	return v
}

// decodeYUY2 unpacks two pixels per 4-byte macropixel (Y0 U Y1 V) using
// BT.601 integer coefficients (§4.8).
func decodeYUY2(data []byte, width, height int) ([]byte, error) {
	n := width * height
	units, err := decodeUnits(data, 4, 2, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n*4)
	for i := 0; i < units; i++ {
		y0 := int32(data[i*4])
		u := int32(data[i*4+1]) - 128
		y1 := int32(data[i*4+2])
		v := int32(data[i*4+3]) - 128

		writeYUV(out, i*2, y0, u, v)
		writeYUV(out, i*2+1, y1, u, v)
	}
	return out, nil
}

func writeYUV(out []byte, pixel int, y, u, v int32) {
	c := (y - 16) * 298
	r := (c + 409*v + 128) >> 8
	g := (c - 100*u - 208*v + 128) >> 8
	b := (c + 516*u + 128) >> 8

	out[pixel*4] = clampInt32ToU8(r)
	out[pixel*4+1] = clampInt32ToU8(g)
	out[pixel*4+2] = clampInt32ToU8(b)
	out[pixel*4+3] = 255
}

func clampInt32ToU8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
