package mesh

import (
	"fmt"

	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/errs"
)

// bitReader gathers bit_size-wide integers LSB-first across byte
// boundaries (§4.9 "gather bit_size bits LSB-first").
type bitReader struct {
	data   []byte
	bitPos int
}

func (br *bitReader) read(bits uint8) (uint32, error) {
	var v uint32
	for i := uint8(0); i < bits; i++ {
		byteIdx := br.bitPos / 8
		if byteIdx >= len(br.data) {
			return 0, fmt.Errorf("%w: packed vector bit read past end", errs.ErrEndOfInput)
		}
		bit := (br.data[byteIdx] >> uint(br.bitPos%8)) & 1
		v |= uint32(bit) << i
		br.bitPos++
	}
	return v, nil
}

// unpackFloatVector expands a PackedFloatVector into num_items floats
// (§4.9): value = raw/(2^bit_size-1)*range + start.
func unpackFloatVector(p classes.PackedFloatVector) ([]float32, error) {
	out := make([]float32, p.NumItems)
	if p.NumItems == 0 {
		return out, nil
	}
	if p.BitSize == 0 || p.BitSize > 32 {
		return nil, fmt.Errorf("%w: packed float vector bit size %d", errs.ErrInvalidValue, p.BitSize)
	}

	maxVal := float64((uint64(1) << p.BitSize) - 1)
	br := bitReader{data: p.Data}
	for i := range out {
		raw, err := br.read(p.BitSize)
		if err != nil {
			return nil, err
		}
		out[i] = float32(float64(raw)/maxVal*float64(p.Range)) + p.Start
	}

	return out, nil
}

// unpackIntVector expands a PackedIntVector into num_items raw integers
// (§4.9: "same bit-packing, integer output" — no range/start rescale).
func unpackIntVector(p classes.PackedIntVector) ([]uint32, error) {
	out := make([]uint32, p.NumItems)
	if p.NumItems == 0 {
		return out, nil
	}
	if p.BitSize == 0 || p.BitSize > 32 {
		return nil, fmt.Errorf("%w: packed int vector bit size %d", errs.ErrInvalidValue, p.BitSize)
	}

	br := bitReader{data: p.Data}
	for i := range out {
		raw, err := br.read(p.BitSize)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}

	return out, nil
}
