package mesh

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
	"github.com/go-unity/assetkit/internal/pool"
)

// indicesForSubMesh decodes sm's raw index window out of m's shared index
// buffer, widening 16-bit indices to uint32.
func indicesForSubMesh(indexBuffer []byte, use16Bit bool, firstByte, indexCount uint32) ([]uint32, error) {
	out := make([]uint32, indexCount)
	if use16Bit {
		need := int(firstByte) + int(indexCount)*2
		if need > len(indexBuffer) {
			return nil, fmt.Errorf("%w: submesh index window exceeds index buffer", errs.ErrEndOfInput)
		}
		for i := uint32(0); i < indexCount; i++ {
			off := int(firstByte) + int(i)*2
			out[i] = uint32(indexBuffer[off]) | uint32(indexBuffer[off+1])<<8
		}
		return out, nil
	}

	need := int(firstByte) + int(indexCount)*4
	if need > len(indexBuffer) {
		return nil, fmt.Errorf("%w: submesh index window exceeds index buffer", errs.ErrEndOfInput)
	}
	for i := uint32(0); i < indexCount; i++ {
		off := int(firstByte) + int(i)*4
		out[i] = uint32(indexBuffer[off]) | uint32(indexBuffer[off+1])<<8 |
			uint32(indexBuffer[off+2])<<16 | uint32(indexBuffer[off+3])<<24
	}

	return out, nil
}

// triangulate expands a raw index window into a flat triangle-list index
// buffer per §4.9's topology rules.
func triangulate(topology format.MeshTopology, indices []uint32) ([]uint32, error) {
	switch topology {
	case format.MeshTopologyTriangles:
		n := len(indices) - len(indices)%3
		out := make([]uint32, n)
		copy(out, indices[:n])
		return out, nil

	case format.MeshTopologyTriangleStrip:
		// upper bound: every window could emit a triangle; a pooled
		// scratch buffer avoids a grow-by-append allocation churn for
		// long strips, trimmed to the real count before returning.
		scratch, release := pool.GetUint32Slice(len(indices) * 3)
		defer release()
		n := 0
		for i := 0; i+2 < len(indices); i++ {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if a == b || b == c || a == c {
				continue
			}
			if i%2 == 0 {
				scratch[n], scratch[n+1], scratch[n+2] = a, b, c
			} else {
				scratch[n], scratch[n+1], scratch[n+2] = a, c, b
			}
			n += 3
		}
		out := make([]uint32, n)
		copy(out, scratch[:n])
		return out, nil

	case format.MeshTopologyQuads:
		n := len(indices) - len(indices)%4
		out := make([]uint32, 0, n*3/2)
		for i := 0; i < n; i += 4 {
			a, b, c, d := indices[i], indices[i+1], indices[i+2], indices[i+3]
			out = append(out, a, b, c, a, c, d)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: topology %s has no triangle expansion", errs.ErrUnimplemented, topology)
	}
}
