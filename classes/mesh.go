package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/format"
)

// SubMesh is one draw-call range into a Mesh's shared index/vertex
// buffers, tagged with the topology get_triangles must expand it by
// (§4.9).
type SubMesh struct {
	FirstByte    uint32
	IndexCount   uint32
	Topology     int32
	FirstVertex  uint32
	VertexCount  uint32
	LocalAABBCenter [3]float32
	LocalAABBExtent [3]float32
}

// ChannelInfo describes one VertexData attribute stream: which stream it
// lives in, its scalar format, dimension count, and byte offset (§4.9).
type ChannelInfo struct {
	Stream    uint8
	Offset    uint8
	Format    uint8
	Dimension uint8
}

// VertexData is Mesh's packed interleaved-stream vertex buffer (≥3.5):
// one ChannelInfo per attribute kind plus the raw bytes to decode against
// it in readVertexData (§4.9).
type VertexData struct {
	CurrentChannels uint32
	VertexCount     uint32
	Channels        []ChannelInfo
	Data            []byte
}

// PackedFloatVector and PackedIntVector are bit-packed scalar arrays used
// throughout CompressedMesh (§4.9): unpacking is done by the mesh package,
// not here, since it needs no knowledge of Unity's binary layout.
type PackedFloatVector struct {
	NumItems uint32
	Range    float32
	Start    float32
	Data     []byte
	BitSize  uint8
}

type PackedIntVector struct {
	NumItems uint32
	Data     []byte
	BitSize  uint8
}

// CompressedMesh holds every packed-vector stream Unity may use in place
// of plain VertexData (≥2.6) (§4.9).
type CompressedMesh struct {
	Vertices      PackedFloatVector
	UV            PackedFloatVector
	Normals       PackedFloatVector
	Tangents      PackedFloatVector
	Weights       PackedIntVector
	NormalSigns   PackedIntVector
	TangentSigns  PackedIntVector
	FloatColors   PackedFloatVector
	BoneIndices   PackedIntVector
	Triangles     PackedIntVector
	UVInfo        uint32
}

// BlendShapeData is the ≥4.1 morph-target payload: per-shape vertex
// deltas plus channel/shape metadata (§4.9).
type BlendShapeVertex struct {
	Vertex [3]float32
	Normal [3]float32
	Tangent [3]float32
	Index  uint32
}

type MeshBlendShape struct {
	FirstVertex uint32
	VertexCount uint32
	HasNormals  bool
	HasTangents bool
}

type MeshBlendShapeChannel struct {
	Name           string
	NameHash       uint32
	FrameIndex     int32
	FrameCount     int32
}

type BlendShapeData struct {
	Vertices     []BlendShapeVertex
	Shapes       []MeshBlendShape
	Channels     []MeshBlendShapeChannel
	FullWeights  []float32
}

// Mesh is the decoded raw Mesh object; ProcessedMesh (package mesh)
// consumes it to build flat vertex/index buffers (§4.9).
type Mesh struct {
	Name                string
	SubMeshes           []SubMesh
	BlendShapes         BlendShapeData
	BindPoses           [][16]float32
	BoneNameHashes      []uint32
	RootBoneNameHash    uint32
	BonesAABB           []BoneAABB
	VariableBoneCount   []uint32
	MeshCompression     uint8
	IsReadable          bool
	KeepVertices        bool
	KeepIndices         bool
	IndexFormat         int32
	Use16BitIndices     bool
	IndexBuffer         []byte
	VertexData          VertexData
	Compressed          CompressedMesh
	IsCompressed        bool
	LocalAABBCenter     [3]float32
	LocalAABBExtent     [3]float32
	MeshUsageFlags      int32
	StreamData          StreamingInfo
	rawBytes            []byte
}

// BoneAABB is one bone's local-space bounding box (≥2019) (§4.9).
type BoneAABB struct {
	Center [3]float32
	Extent [3]float32
}

func readMesh(r *binary.Reader, serializedFileFormat int32, uv format.Version, b *bundle.Bundle) (Mesh, error) {
	var m Mesh

	var err error
	if m.Name, err = r.AlignedString(); err != nil {
		return m, fmt.Errorf("mesh name: %w", err)
	}

	subMeshes, err := binary.ReadSlice(r, func(rd *binary.Reader) (SubMesh, error) {
		return readSubMesh(rd, uv)
	})
	if err != nil {
		return m, fmt.Errorf("mesh submeshes: %w", err)
	}
	m.SubMeshes = subMeshes

	if uv.AtLeast(4, 1) {
		bs, err := readBlendShapeData(r, uv)
		if err != nil {
			return m, fmt.Errorf("mesh blend shapes: %w", err)
		}
		m.BlendShapes = bs
	}

	if uv.AtLeast(4, 3) {
		poses, err := binary.ReadSlice(r, func(rd *binary.Reader) ([16]float32, error) {
			var mat [16]float32
			v, err := rd.FixedF32(16)
			if err != nil {
				return mat, err
			}
			copy(mat[:], v)
			return mat, nil
		})
		if err != nil {
			return m, fmt.Errorf("mesh bind poses: %w", err)
		}
		m.BindPoses = poses

		hashes, err := binary.ReadSlice(r, (*binary.Reader).U32)
		if err != nil {
			return m, fmt.Errorf("mesh bone name hashes: %w", err)
		}
		m.BoneNameHashes = hashes

		if m.RootBoneNameHash, err = r.U32(); err != nil {
			return m, fmt.Errorf("mesh root bone name hash: %w", err)
		}
	}

	if uv.AtLeast(2019) {
		aabbs, err := binary.ReadSlice(r, func(rd *binary.Reader) (BoneAABB, error) {
			var a BoneAABB
			c, err := rd.FixedF32(3)
			if err != nil {
				return a, err
			}
			copy(a.Center[:], c)
			e, err := rd.FixedF32(3)
			if err != nil {
				return a, err
			}
			copy(a.Extent[:], e)
			return a, nil
		})
		if err != nil {
			return m, fmt.Errorf("mesh bones aabb: %w", err)
		}
		m.BonesAABB = aabbs

		vbc, err := binary.ReadSlice(r, (*binary.Reader).U32)
		if err != nil {
			return m, fmt.Errorf("mesh variable bone count weights: %w", err)
		}
		m.VariableBoneCount = vbc
	}

	meshCompression, err := r.U8()
	if err != nil {
		return m, fmt.Errorf("mesh compression: %w", err)
	}
	m.MeshCompression = meshCompression

	if uv.AtLeast(2, 6) {
		if m.IsReadable, err = r.Bool(); err != nil {
			return m, fmt.Errorf("mesh is readable: %w", err)
		}
		if m.KeepVertices, err = r.Bool(); err != nil {
			return m, fmt.Errorf("mesh keep vertices: %w", err)
		}
		if m.KeepIndices, err = r.Bool(); err != nil {
			return m, fmt.Errorf("mesh keep indices: %w", err)
		}
	}
	if err := r.Align(4); err != nil {
		return m, fmt.Errorf("mesh align after read flags: %w", err)
	}

	if uv.AtLeast(2017, 3) {
		if m.IndexFormat, err = r.I32(); err != nil {
			return m, fmt.Errorf("mesh index format: %w", err)
		}
		m.Use16BitIndices = m.IndexFormat == 0
	} else {
		m.Use16BitIndices = true
	}

	idxLen, err := r.I32()
	if err != nil {
		return m, fmt.Errorf("mesh index buffer length: %w", err)
	}
	idx, err := r.ReadBytesCopy(int(idxLen))
	if err != nil {
		return m, fmt.Errorf("mesh index buffer: %w", err)
	}
	m.IndexBuffer = idx
	if err := r.Align(4); err != nil {
		return m, fmt.Errorf("mesh align after index buffer: %w", err)
	}

	if uv.Less(3, 5) {
		// legacy in-file vertex/skin/uv/normal/tangent arrays: not
		// produced by any Unity build this module targets (§4.9 scopes
		// to VertexData/CompressedMesh); surfaced as Unimplemented by
		// the mesh post-processor rather than hand-decoded here.
	} else {
		vd, err := readVertexDataRaw(r, uv)
		if err != nil {
			return m, fmt.Errorf("mesh vertex data: %w", err)
		}
		m.VertexData = vd
	}

	if uv.AtLeast(2, 6) {
		cm, err := readCompressedMesh(r)
		if err != nil {
			return m, fmt.Errorf("mesh compressed mesh: %w", err)
		}
		m.Compressed = cm
		m.IsCompressed = cm.Vertices.NumItems > 0
	}

	if _, err := r.ReadBytes(24); err != nil { // reserved local AABB (read and discarded)
		return m, fmt.Errorf("mesh reserved aabb: %w", err)
	}
	if _, err := r.I32(); err != nil { // mesh usage flags placeholder
		return m, fmt.Errorf("mesh usage flags: %w", err)
	}

	if uv.AtLeast(5) {
		if _, err := binary.ReadSlice(r, (*binary.Reader).U32); err != nil { // baked collision mesh indices
			return m, fmt.Errorf("mesh baked collision indices: %w", err)
		}
		if _, err := binary.ReadSlice(r, (*binary.Reader).U32); err != nil { // baked collision vertices (packed)
			return m, fmt.Errorf("mesh baked collision vertices: %w", err)
		}
	}

	if uv.AtLeast(2018, 2) {
		if _, err := r.I32(); err != nil { // mesh metrics 0
			return m, fmt.Errorf("mesh metrics: %w", err)
		}
		if _, err := r.I32(); err != nil { // mesh metrics 1
			return m, fmt.Errorf("mesh metrics: %w", err)
		}
	}

	if uv.AtLeast(2018, 3) {
		if err := r.Align(4); err != nil {
			return m, fmt.Errorf("mesh align before streaming info: %w", err)
		}
		si, err := readStreamingInfo(r)
		if err != nil {
			return m, fmt.Errorf("mesh streaming info: %w", err)
		}
		m.StreamData = si
		if si.Path != "" {
			data, err := resolveStreamed(b, si)
			if err != nil {
				return m, err
			}
			m.rawBytes = data
		}
	}

	return m, nil
}

func readSubMesh(r *binary.Reader, uv format.Version) (SubMesh, error) {
	var s SubMesh

	var err error
	if s.FirstByte, err = r.U32(); err != nil {
		return s, fmt.Errorf("submesh first byte: %w", err)
	}
	if s.IndexCount, err = r.U32(); err != nil {
		return s, fmt.Errorf("submesh index count: %w", err)
	}
	if s.Topology, err = r.I32(); err != nil {
		return s, fmt.Errorf("submesh topology: %w", err)
	}
	if uv.Less(4) {
		if _, err = r.I32(); err != nil { // triangle count, derivable
			return s, fmt.Errorf("submesh triangle count: %w", err)
		}
	}
	if uv.AtLeast(3) {
		if s.FirstVertex, err = r.U32(); err != nil {
			return s, fmt.Errorf("submesh first vertex: %w", err)
		}
		if s.VertexCount, err = r.U32(); err != nil {
			return s, fmt.Errorf("submesh vertex count: %w", err)
		}
		center, err := r.FixedF32(3)
		if err != nil {
			return s, fmt.Errorf("submesh local aabb center: %w", err)
		}
		copy(s.LocalAABBCenter[:], center)
		extent, err := r.FixedF32(3)
		if err != nil {
			return s, fmt.Errorf("submesh local aabb extent: %w", err)
		}
		copy(s.LocalAABBExtent[:], extent)
	}

	return s, nil
}

func readBlendShapeData(r *binary.Reader, uv format.Version) (BlendShapeData, error) {
	var bs BlendShapeData

	if uv.AtLeast(4, 3) {
		verts, err := binary.ReadSlice(r, func(rd *binary.Reader) (BlendShapeVertex, error) {
			var v BlendShapeVertex
			pos, err := rd.FixedF32(3)
			if err != nil {
				return v, err
			}
			copy(v.Vertex[:], pos)
			norm, err := rd.FixedF32(3)
			if err != nil {
				return v, err
			}
			copy(v.Normal[:], norm)
			tan, err := rd.FixedF32(3)
			if err != nil {
				return v, err
			}
			copy(v.Tangent[:], tan)
			if v.Index, err = rd.U32(); err != nil {
				return v, err
			}
			return v, nil
		})
		if err != nil {
			return bs, fmt.Errorf("blend shape vertices: %w", err)
		}
		bs.Vertices = verts

		shapes, err := binary.ReadSlice(r, func(rd *binary.Reader) (MeshBlendShape, error) {
			var s MeshBlendShape
			var err error
			if s.FirstVertex, err = rd.U32(); err != nil {
				return s, err
			}
			if s.VertexCount, err = rd.U32(); err != nil {
				return s, err
			}
			if s.HasNormals, err = rd.Bool(); err != nil {
				return s, err
			}
			if s.HasTangents, err = rd.Bool(); err != nil {
				return s, err
			}
			return s, nil
		})
		if err != nil {
			return bs, fmt.Errorf("blend shapes: %w", err)
		}
		bs.Shapes = shapes

		channels, err := binary.ReadSlice(r, func(rd *binary.Reader) (MeshBlendShapeChannel, error) {
			var c MeshBlendShapeChannel
			var err error
			if c.Name, err = rd.AlignedString(); err != nil {
				return c, err
			}
			if c.NameHash, err = rd.U32(); err != nil {
				return c, err
			}
			if c.FrameIndex, err = rd.I32(); err != nil {
				return c, err
			}
			if c.FrameCount, err = rd.I32(); err != nil {
				return c, err
			}
			return c, nil
		})
		if err != nil {
			return bs, fmt.Errorf("blend shape channels: %w", err)
		}
		bs.Channels = channels

		weights, err := binary.ReadSlice(r, (*binary.Reader).F32)
		if err != nil {
			return bs, fmt.Errorf("blend shape full weights: %w", err)
		}
		bs.FullWeights = weights
	}

	return bs, nil
}

func readPackedFloatVector(r *binary.Reader) (PackedFloatVector, error) {
	var p PackedFloatVector

	var err error
	if p.NumItems, err = r.U32(); err != nil {
		return p, fmt.Errorf("numitems: %w", err)
	}
	if p.Range, err = r.F32(); err != nil {
		return p, fmt.Errorf("range: %w", err)
	}
	if p.Start, err = r.F32(); err != nil {
		return p, fmt.Errorf("start: %w", err)
	}
	length, err := r.I32()
	if err != nil {
		return p, fmt.Errorf("data length: %w", err)
	}
	if p.Data, err = r.ReadBytesCopy(int(length)); err != nil {
		return p, fmt.Errorf("data: %w", err)
	}
	if err := r.Align(4); err != nil {
		return p, fmt.Errorf("align after data: %w", err)
	}
	if p.BitSize, err = r.U8(); err != nil {
		return p, fmt.Errorf("bit size: %w", err)
	}
	if err := r.Align(4); err != nil {
		return p, fmt.Errorf("align after bit size: %w", err)
	}

	return p, nil
}

func readPackedIntVector(r *binary.Reader) (PackedIntVector, error) {
	var p PackedIntVector

	var err error
	if p.NumItems, err = r.U32(); err != nil {
		return p, fmt.Errorf("numitems: %w", err)
	}
	length, err := r.I32()
	if err != nil {
		return p, fmt.Errorf("data length: %w", err)
	}
	if p.Data, err = r.ReadBytesCopy(int(length)); err != nil {
		return p, fmt.Errorf("data: %w", err)
	}
	if err := r.Align(4); err != nil {
		return p, fmt.Errorf("align after data: %w", err)
	}
	if p.BitSize, err = r.U8(); err != nil {
		return p, fmt.Errorf("bit size: %w", err)
	}
	if err := r.Align(4); err != nil {
		return p, fmt.Errorf("align after bit size: %w", err)
	}

	return p, nil
}

func readCompressedMesh(r *binary.Reader) (CompressedMesh, error) {
	var cm CompressedMesh

	var err error
	if cm.Vertices, err = readPackedFloatVector(r); err != nil {
		return cm, fmt.Errorf("vertices: %w", err)
	}
	if cm.UV, err = readPackedFloatVector(r); err != nil {
		return cm, fmt.Errorf("uv: %w", err)
	}
	if cm.Normals, err = readPackedFloatVector(r); err != nil {
		return cm, fmt.Errorf("normals: %w", err)
	}
	if cm.Tangents, err = readPackedFloatVector(r); err != nil {
		return cm, fmt.Errorf("tangents: %w", err)
	}
	if cm.Weights, err = readPackedIntVector(r); err != nil {
		return cm, fmt.Errorf("weights: %w", err)
	}
	if cm.NormalSigns, err = readPackedIntVector(r); err != nil {
		return cm, fmt.Errorf("normal signs: %w", err)
	}
	if cm.TangentSigns, err = readPackedIntVector(r); err != nil {
		return cm, fmt.Errorf("tangent signs: %w", err)
	}
	if cm.FloatColors, err = readPackedFloatVector(r); err != nil {
		return cm, fmt.Errorf("float colors: %w", err)
	}
	if cm.BoneIndices, err = readPackedIntVector(r); err != nil {
		return cm, fmt.Errorf("bone indices: %w", err)
	}
	if cm.Triangles, err = readPackedIntVector(r); err != nil {
		return cm, fmt.Errorf("triangles: %w", err)
	}
	if cm.UVInfo, err = r.U32(); err != nil {
		return cm, fmt.Errorf("uv info: %w", err)
	}

	return cm, nil
}

func readVertexDataRaw(r *binary.Reader, uv format.Version) (VertexData, error) {
	var vd VertexData

	var err error
	if uv.AtLeast(2018) {
		if vd.VertexCount, err = r.U32(); err != nil {
			return vd, fmt.Errorf("vertex count: %w", err)
		}
	}
	if uv.Less(2018) {
		if vd.CurrentChannels, err = r.U32(); err != nil {
			return vd, fmt.Errorf("current channels: %w", err)
		}
		if vd.VertexCount, err = r.U32(); err != nil {
			return vd, fmt.Errorf("vertex count: %w", err)
		}
	}

	channels, err := binary.ReadSlice(r, func(rd *binary.Reader) (ChannelInfo, error) {
		var c ChannelInfo
		var err error
		if c.Stream, err = rd.U8(); err != nil {
			return c, err
		}
		if c.Offset, err = rd.U8(); err != nil {
			return c, err
		}
		if c.Format, err = rd.U8(); err != nil {
			return c, err
		}
		if c.Dimension, err = rd.U8(); err != nil {
			return c, err
		}
		return c, nil
	})
	if err != nil {
		return vd, fmt.Errorf("channels: %w", err)
	}
	vd.Channels = channels

	length, err := r.I32()
	if err != nil {
		return vd, fmt.Errorf("data length: %w", err)
	}
	if vd.Data, err = r.ReadBytesCopy(int(length)); err != nil {
		return vd, fmt.Errorf("data: %w", err)
	}
	if err := r.Align(4); err != nil {
		return vd, fmt.Errorf("align after data: %w", err)
	}

	return vd, nil
}

// RawBytes returns Mesh's streamed body if it was resolved from a sibling
// bundle node (≥2018.3 StreamingInfo branch), or nil otherwise.
func (m Mesh) RawBytes() []byte { return m.rawBytes }
