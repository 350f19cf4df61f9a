package mesh

import (
	"fmt"
	"math"

	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// ProcessedSubMesh is one draw-call range already expanded to a flat
// triangle-list index buffer, indexing into ProcessedMesh's vertex arrays.
type ProcessedSubMesh struct {
	Topology format.MeshTopology
	Indices  []uint32
}

// ProcessedMesh is the flattened, directly renderable form of a
// classes.Mesh: every packed/compressed representation collapsed into
// plain per-vertex arrays and triangle-list submeshes (§4.9).
type ProcessedMesh struct {
	Name string

	Vertices [][3]float32
	Normals  [][3]float32
	Tangents [][4]float32
	Colors   [][4]float32
	UV       [8][][2]float32

	BoneWeights [][4]float32
	BoneIndices [][4]int32

	SubMeshes []ProcessedSubMesh
}

// Process expands m's raw VertexData/CompressedMesh buffers and index
// buffer into a ProcessedMesh. Legacy (<3.5) in-file vertex arrays and
// non-triangle topologies (Lines, LineStrip, Points) are not supported: a
// mesh containing either fails as a whole with errs.ErrUnimplemented.
func Process(m classes.Mesh) (*ProcessedMesh, error) {
	pm := &ProcessedMesh{Name: m.Name}

	var err error
	if m.IsCompressed {
		err = processCompressed(m, pm)
	} else {
		err = processRaw(m, pm)
	}
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
	}

	vertexCount := len(pm.Vertices)
	for _, sm := range m.SubMeshes {
		raw, err := indicesForSubMesh(m.IndexBuffer, m.Use16BitIndices, sm.FirstByte, sm.IndexCount)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		tri, err := triangulate(format.MeshTopology(sm.Topology), raw)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		for _, idx := range tri {
			if int(idx) >= vertexCount {
				return nil, fmt.Errorf("%w: mesh %q submesh index %d out of range (%d vertices)",
					errs.ErrInvalidValue, m.Name, idx, vertexCount)
			}
		}
		pm.SubMeshes = append(pm.SubMeshes, ProcessedSubMesh{
			Topology: format.MeshTopology(sm.Topology),
			Indices:  tri,
		})
	}

	return pm, nil
}

func processRaw(m classes.Mesh, pm *ProcessedMesh) error {
	if len(m.VertexData.Channels) == 0 {
		return fmt.Errorf("%w: no vertex data (pre-3.5 in-file arrays are not decoded)", errs.ErrUnimplemented)
	}

	streams, err := layoutStreams(m.VertexData)
	if err != nil {
		return err
	}
	vertexCount := int(m.VertexData.VertexCount)

	pos, err := readChannel(m.VertexData, streams, channelVertex, vertexCount)
	if err != nil {
		return err
	}
	pm.Vertices = make([][3]float32, len(pos))
	for i, c := range pos {
		copy(pm.Vertices[i][:], c)
	}

	if normals, err := readChannel(m.VertexData, streams, channelNormal, vertexCount); err != nil {
		return err
	} else if normals != nil {
		pm.Normals = make([][3]float32, len(normals))
		for i, c := range normals {
			copy(pm.Normals[i][:], c)
		}
	}

	if tangents, err := readChannel(m.VertexData, streams, channelTangent, vertexCount); err != nil {
		return err
	} else if tangents != nil {
		pm.Tangents = make([][4]float32, len(tangents))
		for i, c := range tangents {
			copy(pm.Tangents[i][:], c)
		}
	}

	if colors, err := readChannel(m.VertexData, streams, channelColor, vertexCount); err != nil {
		return err
	} else if colors != nil {
		pm.Colors = make([][4]float32, len(colors))
		for i, c := range colors {
			copy(pm.Colors[i][:], c)
		}
	}

	for uvIdx, channel := range []int{channelUV0, channelUV1, channelUV2, channelUV3, channelUV4, channelUV5, channelUV6, channelUV7} {
		uv, err := readChannel(m.VertexData, streams, channel, vertexCount)
		if err != nil {
			return err
		}
		if uv == nil {
			continue
		}
		pm.UV[uvIdx] = make([][2]float32, len(uv))
		for i, c := range uv {
			copy(pm.UV[uvIdx][i][:], c)
		}
	}

	weights, err := readChannel(m.VertexData, streams, channelBlendWeight, vertexCount)
	if err != nil {
		return err
	}
	indices, err := readChannel(m.VertexData, streams, channelBlendIndices, vertexCount)
	if err != nil {
		return err
	}
	if weights != nil {
		pm.BoneWeights = make([][4]float32, len(weights))
		for i, c := range weights {
			copy(pm.BoneWeights[i][:], c)
		}
	}
	if indices != nil {
		pm.BoneIndices = make([][4]int32, len(indices))
		for i, c := range indices {
			for d := 0; d < len(c) && d < 4; d++ {
				pm.BoneIndices[i][d] = int32(c[d])
			}
		}
	}

	return nil
}

func processCompressed(m classes.Mesh, pm *ProcessedMesh) error {
	cm := m.Compressed

	verts, err := unpackFloatVector(cm.Vertices)
	if err != nil {
		return fmt.Errorf("compressed vertices: %w", err)
	}
	if len(verts)%3 != 0 {
		return fmt.Errorf("%w: compressed vertex count %d not a multiple of 3", errs.ErrInvalidValue, len(verts))
	}
	vertexCount := len(verts) / 3
	pm.Vertices = make([][3]float32, vertexCount)
	for i := range pm.Vertices {
		copy(pm.Vertices[i][:], verts[i*3:i*3+3])
	}

	normalSigns, err := unpackIntVector(cm.NormalSigns)
	if err != nil {
		return fmt.Errorf("normal signs: %w", err)
	}
	normalsXY, err := unpackFloatVector(cm.Normals)
	if err != nil {
		return fmt.Errorf("compressed normals: %w", err)
	}
	if n := len(normalsXY) / 2; n > 0 {
		pm.Normals = make([][3]float32, n)
		for i := 0; i < n; i++ {
			x, y := normalsXY[i*2], normalsXY[i*2+1]
			z := reconstructZ(x, y)
			if i < len(normalSigns) && normalSigns[i] == 0 {
				z = -z
			}
			pm.Normals[i] = [3]float32{x, y, z}
		}
	}

	tangentSigns, err := unpackIntVector(cm.TangentSigns)
	if err != nil {
		return fmt.Errorf("tangent signs: %w", err)
	}
	tangentsXY, err := unpackFloatVector(cm.Tangents)
	if err != nil {
		return fmt.Errorf("compressed tangents: %w", err)
	}
	if n := len(tangentsXY) / 2; n > 0 {
		pm.Tangents = make([][4]float32, n)
		for i := 0; i < n; i++ {
			x, y := tangentsXY[i*2], tangentsXY[i*2+1]
			z := reconstructZ(x, y)
			handedness := float32(1)
			if i < len(tangentSigns) && tangentSigns[i] == 0 {
				z = -z
				handedness = -1
			}
			pm.Tangents[i] = [4]float32{x, y, z, handedness}
		}
	}

	colors, err := unpackFloatVector(cm.FloatColors)
	if err != nil {
		return fmt.Errorf("compressed colors: %w", err)
	}
	if n := len(colors) / 4; n > 0 {
		pm.Colors = make([][4]float32, n)
		for i := 0; i < n; i++ {
			copy(pm.Colors[i][:], colors[i*4:i*4+4])
		}
	}

	uv, err := unpackFloatVector(cm.UV)
	if err != nil {
		return fmt.Errorf("compressed uv: %w", err)
	}
	if err := unpackUVChannels(uv, cm.UVInfo, vertexCount, pm); err != nil {
		return fmt.Errorf("compressed uv channels: %w", err)
	}

	weights, err := unpackIntVector(cm.Weights)
	if err != nil {
		return fmt.Errorf("compressed weights: %w", err)
	}
	boneIndices, err := unpackIntVector(cm.BoneIndices)
	if err != nil {
		return fmt.Errorf("compressed bone indices: %w", err)
	}
	if len(boneIndices) > 0 {
		bw, bi, err := unpackBoneWeights(weights, boneIndices, vertexCount)
		if err != nil {
			return fmt.Errorf("bone weights: %w", err)
		}
		pm.BoneWeights = bw
		pm.BoneIndices = bi
	}

	return nil
}

// reconstructZ derives the dropped z component of a unit normal/tangent
// stored as (x, y) (§4.9: "z = sqrt(max(0, 1 − x² − y²))").
func reconstructZ(x, y float32) float32 {
	v := 1 - x*x - y*y
	if v < 0 {
		v = 0
	}
	return sqrtf32(v)
}

func sqrtf32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// unpackUVChannels splits the flat, interleaved packed-UV float stream into
// up to 8 per-vertex channels whose dimensions are packed 4 bits each into
// uv_info (0 = channel absent), matching CompressedMesh.uv_info's layout.
func unpackUVChannels(flat []float32, uvInfo uint32, vertexCount int, pm *ProcessedMesh) error {
	if vertexCount == 0 {
		return nil
	}

	dims := make([]int, 8)
	total := 0
	for ch := 0; ch < 8; ch++ {
		d := int((uvInfo >> uint(4*ch)) & 0xf)
		dims[ch] = d
		total += d
	}
	if total == 0 {
		return nil
	}
	if total*vertexCount != len(flat) {
		return fmt.Errorf("%w: packed uv stream length %d does not match %d vertices * %d components",
			errs.ErrInvalidValue, len(flat), vertexCount, total)
	}

	pos := 0
	for v := 0; v < vertexCount; v++ {
		for ch := 0; ch < 8; ch++ {
			d := dims[ch]
			if d == 0 {
				continue
			}
			if pm.UV[ch] == nil {
				pm.UV[ch] = make([][2]float32, vertexCount)
			}
			for c := 0; c < d && c < 2; c++ {
				pm.UV[ch][v][c] = flat[pos+c]
			}
			pos += d
		}
	}

	return nil
}

// unpackBoneWeights consumes weights[]/bone_indices[] jointly (§4.9): for
// each vertex, accumulate up to four (bone_index, weight/31) slots until
// the running weight sum reaches 31 or all four slots are filled, in which
// case the final slot's weight is inferred as 31 minus the running sum.
func unpackBoneWeights(weights, boneIndices []uint32, vertexCount int) ([][4]float32, [][4]int32, error) {
	bw := make([][4]float32, vertexCount)
	bi := make([][4]int32, vertexCount)

	wi, bii := 0, 0
	for v := 0; v < vertexCount; v++ {
		sum := uint32(0)
		for slot := 0; slot < 4; slot++ {
			if bii >= len(boneIndices) {
				return nil, nil, fmt.Errorf("%w: bone index stream exhausted at vertex %d", errs.ErrEndOfInput, v)
			}
			boneIdx := boneIndices[bii]
			bii++

			var w uint32
			if slot == 3 {
				if sum < 31 {
					w = 31 - sum
				}
			} else {
				if wi >= len(weights) {
					return nil, nil, fmt.Errorf("%w: weight stream exhausted at vertex %d", errs.ErrEndOfInput, v)
				}
				w = weights[wi]
				wi++
			}
			sum += w

			bw[v][slot] = float32(w) / 31
			bi[v][slot] = int32(boneIdx)

			if sum >= 31 {
				break
			}
		}
	}

	return bw, bi, nil
}
