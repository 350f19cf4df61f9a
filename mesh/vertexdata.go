package mesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/internal/pool"
)

// Shader channel indices for the >=2018.2 VertexData layout (kShaderChannel*
// in Unity's own source): this is the only channel ordering decoded here.
// Earlier engine versions renumber and resize this table; meshes produced
// by those builds are expected to go through CompressedMesh instead, which
// is version-independent.
const (
	channelVertex = iota
	channelNormal
	channelTangent
	channelColor
	channelUV0
	channelUV1
	channelUV2
	channelUV3
	channelUV4
	channelUV5
	channelUV6
	channelUV7
	channelBlendWeight
	channelBlendIndices
)

// componentSize returns the byte width of one scalar component in Unity's
// VertexFormat enum (>=2017.4).
func componentSize(format uint8) (int, error) {
	switch format {
	case 0, 10, 11: // Float, UInt32, SInt32
		return 4, nil
	case 1, 4, 5, 8, 9: // Float16, UNorm16, SNorm16, UInt16, SInt16
		return 2, nil
	case 2, 3, 6, 7: // UNorm8, SNorm8, UInt8, SInt8
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: vertex component format %d", errs.ErrUnimplemented, format)
	}
}

func decodeComponent(raw []byte, format uint8) (float32, error) {
	switch format {
	case 0: // Float
		return math.Float32frombits(binary.LittleEndian.Uint32(raw)), nil
	case 1: // Float16
		return half16ToFloat32(binary.LittleEndian.Uint16(raw)), nil
	case 2: // UNorm8
		return float32(raw[0]) / 255, nil
	case 3: // SNorm8
		return clampNorm(float32(int8(raw[0])) / 127), nil
	case 4: // UNorm16
		return float32(binary.LittleEndian.Uint16(raw)) / 65535, nil
	case 5: // SNorm16
		return clampNorm(float32(int16(binary.LittleEndian.Uint16(raw))) / 32767), nil
	case 6: // UInt8
		return float32(raw[0]), nil
	case 7: // SInt8
		return float32(int8(raw[0])), nil
	case 8: // UInt16
		return float32(binary.LittleEndian.Uint16(raw)), nil
	case 9: // SInt16
		return float32(int16(binary.LittleEndian.Uint16(raw))), nil
	case 10: // UInt32
		return float32(binary.LittleEndian.Uint32(raw)), nil
	case 11: // SInt32
		return float32(int32(binary.LittleEndian.Uint32(raw))), nil
	default:
		return 0, fmt.Errorf("%w: vertex component format %d", errs.ErrUnimplemented, format)
	}
}

func clampNorm(v float32) float32 {
	if v < -1 {
		return -1
	}
	return v
}

// half16ToFloat32 converts an IEEE754 binary16 value to float32.
func half16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	var bits uint32
	switch {
	case exp == 0 && frac == 0:
		bits = sign << 31
	case exp == 0x1f:
		bits = sign<<31 | 0xff<<23 | frac<<13
	case exp == 0:
		// subnormal half: normalize by shifting the fraction left until
		// the implicit leading bit appears, adjusting the exponent.
		e := int32(-1)
		f := frac
		for f&0x400 == 0 {
			f <<= 1
			e--
		}
		f &= 0x3ff
		bits = sign<<31 | uint32(int32(127-15)+1+e)<<23 | f<<13
	default:
		bits = sign<<31 | (exp-15+127)<<23 | frac<<13
	}

	return math.Float32frombits(bits)
}

// streamLayout is one interleaved-stream's per-vertex byte stride and the
// channels that live in it.
type streamLayout struct {
	stride   int
	channels []classes.ChannelInfo
}

// layoutStreams groups vd's channels by Stream and derives each stream's
// per-vertex stride from the furthest channel's offset+size, rounded up to
// a 4-byte boundary (Unity's general stream-packing rule). This is
// reconstructed from the documented packing convention rather than a
// stride field VertexData doesn't carry, so unusual custom channel sets
// could in principle disagree with a live build; no fixture was available
// this session to confirm it bit-for-bit.
func layoutStreams(vd classes.VertexData) (map[uint8]*streamLayout, error) {
	streams := make(map[uint8]*streamLayout)
	for _, ch := range vd.Channels {
		if ch.Dimension == 0 {
			continue
		}
		sl, ok := streams[ch.Stream]
		if !ok {
			sl = &streamLayout{}
			streams[ch.Stream] = sl
		}
		sl.channels = append(sl.channels, ch)

		size, err := componentSize(ch.Format)
		if err != nil {
			return nil, err
		}
		end := int(ch.Offset) + int(ch.Dimension)*size
		if end > sl.stride {
			sl.stride = end
		}
	}
	for _, sl := range streams {
		if sl.stride%4 != 0 {
			sl.stride += 4 - sl.stride%4
		}
	}

	return streams, nil
}

// readChannel extracts channelIdx's per-vertex components from vd as
// dimension-length float32 tuples (zero length if the channel is absent).
func readChannel(vd classes.VertexData, streams map[uint8]*streamLayout, channelIdx int, vertexCount int) ([][]float32, error) {
	if channelIdx >= len(vd.Channels) {
		return nil, nil
	}
	ch := vd.Channels[channelIdx]
	if ch.Dimension == 0 {
		return nil, nil
	}

	size, err := componentSize(ch.Format)
	if err != nil {
		return nil, err
	}

	// stream base offset: streams are laid out sequentially in vd.Data in
	// ascending stream index order, each spanning stride*vertexCount bytes.
	base := 0
	for s := uint8(0); s < ch.Stream; s++ {
		if sl, ok := streams[s]; ok {
			base += sl.stride * vertexCount
		}
	}
	stride := streams[ch.Stream].stride
	dim := int(ch.Dimension)

	// scratch holds the whole channel's decoded components flattened; it's
	// discarded once copied into the per-vertex tuples below, the same
	// pooled-scratch-then-copy pattern triangulate uses for its index
	// buffers.
	scratch, release := pool.GetFloat32Slice(vertexCount * dim)
	defer release()

	for v := 0; v < vertexCount; v++ {
		off := base + v*stride + int(ch.Offset)
		for d := 0; d < dim; d++ {
			start := off + d*size
			if start+size > len(vd.Data) {
				return nil, fmt.Errorf("%w: vertex channel %d vertex %d out of range", errs.ErrEndOfInput, channelIdx, v)
			}
			val, err := decodeComponent(vd.Data[start:start+size], ch.Format)
			if err != nil {
				return nil, err
			}
			scratch[v*dim+d] = val
		}
	}

	out := make([][]float32, vertexCount)
	for v := 0; v < vertexCount; v++ {
		comp := make([]float32, dim)
		copy(comp, scratch[v*dim:(v+1)*dim])
		out[v] = comp
	}

	return out, nil
}
