package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

// Renderer is the common base every concrete renderer embeds (§4.7): a
// large version-gated schedule of visibility/lighting flags plus its
// material list.
type Renderer struct {
	Enabled                  bool
	CastShadows              int32
	ReceiveShadows           bool
	DynamicOccludee          bool
	StaticShadowCaster       bool
	MotionVectors            int32
	LightProbeUsage          int32
	ReflectionProbeUsage     int32
	RayTracingMode           int32
	RayTraceProcedural       bool
	RenderingLayerMask       uint32
	RendererPriority         int32
	LightmapIndex            uint16
	LightmapIndexDynamic     uint16
	LightmapTilingOffset     [4]float32
	LightmapTilingOffsetDyn  [4]float32
	Materials                []PPtr[Material]
	StaticBatchFirstSubMesh  uint16
	StaticBatchSubMeshCount  uint16
	StaticBatchSubsetIndices []uint32
	SortingLayerID           int16
	SortingLayer             int16
	SortingOrder             int16
}

func readRenderer(r *binary.Reader, serializedFileFormat int32, uv format.Version) (Renderer, error) {
	var rr Renderer

	var err error
	if uv.Less(5, 4) {
		if rr.Enabled, err = r.Bool(); err != nil {
			return rr, fmt.Errorf("renderer enabled: %w", err)
		}
		if rr.CastShadows, err = readBoolAsInt32(r); err != nil {
			return rr, fmt.Errorf("renderer cast shadows: %w", err)
		}
		if rr.ReceiveShadows, err = r.Bool(); err != nil {
			return rr, fmt.Errorf("renderer receive shadows: %w", err)
		}
		if err := r.Align(4); err != nil {
			return rr, fmt.Errorf("renderer align after flags: %w", err)
		}
	} else {
		if rr.Enabled, err = r.Bool(); err != nil {
			return rr, fmt.Errorf("renderer enabled: %w", err)
		}
		if uv.AtLeast(5, 5) {
			if rr.CastShadows, err = r.I32(); err != nil {
				return rr, fmt.Errorf("renderer cast shadows: %w", err)
			}
			if rr.ReceiveShadows, err = r.Bool(); err != nil {
				return rr, fmt.Errorf("renderer receive shadows: %w", err)
			}
		} else {
			if rr.ReceiveShadows, err = r.Bool(); err != nil {
				return rr, fmt.Errorf("renderer receive shadows: %w", err)
			}
			if rr.CastShadows, err = readBoolAsInt32(r); err != nil {
				return rr, fmt.Errorf("renderer cast shadows: %w", err)
			}
		}
		if uv.AtLeast(2017, 2) {
			if rr.DynamicOccludee, err = r.Bool(); err != nil {
				return rr, fmt.Errorf("renderer dynamic occludee: %w", err)
			}
		}
		if uv.AtLeast(2021, 2) {
			if rr.StaticShadowCaster, err = r.Bool(); err != nil {
				return rr, fmt.Errorf("renderer static shadow caster: %w", err)
			}
		}
		if uv.AtLeast(5, 4) {
			if rr.MotionVectors, err = r.I32(); err != nil {
				return rr, fmt.Errorf("renderer motion vectors: %w", err)
			}
		}
		if uv.AtLeast(5, 4) {
			if rr.LightProbeUsage, err = r.I32(); err != nil {
				return rr, fmt.Errorf("renderer light probe usage: %w", err)
			}
		}
		if uv.AtLeast(5, 6) {
			if rr.ReflectionProbeUsage, err = r.I32(); err != nil {
				return rr, fmt.Errorf("renderer reflection probe usage: %w", err)
			}
		}
		if uv.AtLeast(2019, 3) {
			if rr.RayTracingMode, err = r.I32(); err != nil {
				return rr, fmt.Errorf("renderer ray tracing mode: %w", err)
			}
		}
		if uv.AtLeast(2020, 1) {
			if rr.RayTraceProcedural, err = r.Bool(); err != nil {
				return rr, fmt.Errorf("renderer ray trace procedural: %w", err)
			}
		}
		if err := r.Align(4); err != nil {
			return rr, fmt.Errorf("renderer align after flags: %w", err)
		}
		if uv.AtLeast(2018, 3) {
			if rr.RenderingLayerMask, err = r.U32(); err != nil {
				return rr, fmt.Errorf("renderer rendering layer mask: %w", err)
			}
		}
		if uv.AtLeast(2018, 3) {
			if rr.RendererPriority, err = r.I32(); err != nil {
				return rr, fmt.Errorf("renderer priority: %w", err)
			}
		}
	}

	if rr.LightmapIndex, err = r.U16(); err != nil {
		return rr, fmt.Errorf("renderer lightmap index: %w", err)
	}
	if uv.AtLeast(5) {
		if rr.LightmapIndexDynamic, err = r.U16(); err != nil {
			return rr, fmt.Errorf("renderer dynamic lightmap index: %w", err)
		}
	}
	if uv.AtLeast(3) {
		tiling, err := r.FixedF32(4)
		if err != nil {
			return rr, fmt.Errorf("renderer lightmap tiling offset: %w", err)
		}
		copy(rr.LightmapTilingOffset[:], tiling)
	}
	if uv.AtLeast(5) {
		tiling, err := r.FixedF32(4)
		if err != nil {
			return rr, fmt.Errorf("renderer dynamic lightmap tiling offset: %w", err)
		}
		copy(rr.LightmapTilingOffsetDyn[:], tiling)
	}

	materials, err := binary.ReadSlice(r, func(rd *binary.Reader) (PPtr[Material], error) {
		return ReadPPtr[Material](rd, serializedFileFormat)
	})
	if err != nil {
		return rr, fmt.Errorf("renderer materials: %w", err)
	}
	rr.Materials = materials

	if uv.AtLeast(5, 5) {
		if rr.StaticBatchFirstSubMesh, err = r.U16(); err != nil {
			return rr, fmt.Errorf("renderer static batch first submesh: %w", err)
		}
		if rr.StaticBatchSubMeshCount, err = r.U16(); err != nil {
			return rr, fmt.Errorf("renderer static batch submesh count: %w", err)
		}
	} else {
		indices, err := binary.ReadSlice(r, (*binary.Reader).U32)
		if err != nil {
			return rr, fmt.Errorf("renderer static batch subset indices: %w", err)
		}
		rr.StaticBatchSubsetIndices = indices
	}

	if rr.SortingLayerID, err = r.I16(); err != nil {
		return rr, fmt.Errorf("renderer sorting layer id: %w", err)
	}
	if uv.AtLeast(2018) {
		if rr.SortingLayer, err = r.I16(); err != nil {
			return rr, fmt.Errorf("renderer sorting layer: %w", err)
		}
	}
	if rr.SortingOrder, err = r.I16(); err != nil {
		return rr, fmt.Errorf("renderer sorting order: %w", err)
	}
	if err := r.Align(4); err != nil {
		return rr, fmt.Errorf("renderer align after sorting order: %w", err)
	}

	return rr, nil
}

func readBoolAsInt32(r *binary.Reader) (int32, error) {
	b, err := r.Bool()
	if err != nil {
		return 0, err
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// MeshRenderer additionally carries its additional-vertex-stream and
// enlighten-vertex-stream mesh references on top of Renderer (§4.7).
type MeshRenderer struct {
	Renderer
	AdditionalVertexStreams PPtr[Mesh]
	EnlightenVertexStream   PPtr[Mesh]
}

func readMeshRenderer(r *binary.Reader, serializedFileFormat int32, uv format.Version) (MeshRenderer, error) {
	var mr MeshRenderer

	base, err := readRenderer(r, serializedFileFormat, uv)
	if err != nil {
		return mr, fmt.Errorf("meshrenderer base: %w", err)
	}
	mr.Renderer = base

	if uv.AtLeast(3, 5) {
		p, err := ReadPPtr[Mesh](r, serializedFileFormat)
		if err != nil {
			return mr, fmt.Errorf("meshrenderer additional vertex streams: %w", err)
		}
		mr.AdditionalVertexStreams = p
	}
	if uv.AtLeast(2019, 1) {
		p, err := ReadPPtr[Mesh](r, serializedFileFormat)
		if err != nil {
			return mr, fmt.Errorf("meshrenderer enlighten vertex stream: %w", err)
		}
		mr.EnlightenVertexStream = p
	}

	return mr, nil
}
