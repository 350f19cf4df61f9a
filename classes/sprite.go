package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

// SpriteSettings unpacks the packed u32 bitfield every SpriteRenderData
// carries (§4.7).
type SpriteSettings struct {
	Packed          bool
	PackingMode     uint8 // 0 Tight, 1 Rectangle
	PackingRotation uint8 // 0 None, 1 FlipH, 2 FlipV, 3 Rot180, 4 Rot90
	MeshType        uint8 // 0 FullRect, 1 Tight
}

func decodeSpriteSettings(raw uint32) SpriteSettings {
	return SpriteSettings{
		Packed:          raw&0x1 != 0,
		PackingMode:     uint8((raw >> 1) & 0x1),
		PackingRotation: uint8((raw >> 2) & 0xf),
		MeshType:        uint8((raw >> 6) & 0x1),
	}
}

// SpriteVertex is the pre-5.6 inline vertex representation used by
// SpriteRenderData when no VertexData/submesh buffer is present (§4.7).
type SpriteVertex struct {
	Position [3]float32
	UV       [2]float32
}

// SpriteRenderData is the GPU-facing half of a Sprite: its source
// texture plus either a submesh/VertexData buffer (≥5.6) or an inlined
// vertex/index array (§4.7).
type SpriteRenderData struct {
	Texture          PPtr[Texture2D]
	AlphaTexture     PPtr[Texture2D]
	SecondaryTextures map[string]PPtr[Texture2D]

	SubMeshes  []SubMesh
	IndexBuffer []byte
	VertexData  VertexData

	Vertices []SpriteVertex
	Indices  []uint16

	BindPoses        [][16]float32
	SourceSkin       []byte
	TextureRect      [4]float32
	TextureRectOffset [2]float32
	AtlasRectOffset  [2]float32
	Settings         SpriteSettings
	UVTransform      [4]float32
	DownscaleMultiplier float32
}

func readSpriteRenderData(r *binary.Reader, serializedFileFormat int32, uv format.Version) (SpriteRenderData, error) {
	var d SpriteRenderData
	d.DownscaleMultiplier = 1

	tex, err := ReadPPtr[Texture2D](r, serializedFileFormat)
	if err != nil {
		return d, fmt.Errorf("texture: %w", err)
	}
	d.Texture = tex

	if uv.AtLeast(5, 2) {
		alpha, err := ReadPPtr[Texture2D](r, serializedFileFormat)
		if err != nil {
			return d, fmt.Errorf("alpha texture: %w", err)
		}
		d.AlphaTexture = alpha
	}

	if uv.AtLeast(2019) {
		count, err := r.I32()
		if err != nil {
			return d, fmt.Errorf("secondary texture count: %w", err)
		}
		d.SecondaryTextures = make(map[string]PPtr[Texture2D], count)
		for i := int32(0); i < count; i++ {
			name, err := r.AlignedString()
			if err != nil {
				return d, fmt.Errorf("secondary texture %d name: %w", i, err)
			}
			p, err := ReadPPtr[Texture2D](r, serializedFileFormat)
			if err != nil {
				return d, fmt.Errorf("secondary texture %d: %w", i, err)
			}
			d.SecondaryTextures[name] = p
		}
	}

	if uv.AtLeast(5, 6) {
		subMeshes, err := binary.ReadSlice(r, func(rd *binary.Reader) (SubMesh, error) {
			return readSubMesh(rd, uv)
		})
		if err != nil {
			return d, fmt.Errorf("submeshes: %w", err)
		}
		d.SubMeshes = subMeshes

		idxLen, err := r.I32()
		if err != nil {
			return d, fmt.Errorf("index buffer length: %w", err)
		}
		idx, err := r.ReadBytesCopy(int(idxLen))
		if err != nil {
			return d, fmt.Errorf("index buffer: %w", err)
		}
		d.IndexBuffer = idx
		if err := r.Align(4); err != nil {
			return d, fmt.Errorf("align after index buffer: %w", err)
		}

		vd, err := readVertexDataRaw(r, uv)
		if err != nil {
			return d, fmt.Errorf("vertex data: %w", err)
		}
		d.VertexData = vd
	} else {
		verts, err := binary.ReadSlice(r, func(rd *binary.Reader) (SpriteVertex, error) {
			var v SpriteVertex
			pos, err := rd.FixedF32(3)
			if err != nil {
				return v, err
			}
			copy(v.Position[:], pos)
			if uv.AtLeast(4, 3) {
				uvv, err := rd.FixedF32(2)
				if err != nil {
					return v, err
				}
				copy(v.UV[:], uvv)
			}
			return v, nil
		})
		if err != nil {
			return d, fmt.Errorf("vertices: %w", err)
		}
		d.Vertices = verts

		indices, err := binary.ReadSlice(r, (*binary.Reader).U16)
		if err != nil {
			return d, fmt.Errorf("indices: %w", err)
		}
		d.Indices = indices
		if err := r.Align(4); err != nil {
			return d, fmt.Errorf("align after indices: %w", err)
		}
	}

	if uv.AtLeast(2018) {
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
			return d, fmt.Errorf("bind poses: %w", err)
		}
		d.BindPoses = poses

		if uv.Less(2018, 2) {
			length, err := r.I32()
			if err != nil {
				return d, fmt.Errorf("source skin length: %w", err)
			}
			skin, err := r.ReadBytesCopy(int(length))
			if err != nil {
				return d, fmt.Errorf("source skin: %w", err)
			}
			d.SourceSkin = skin
		}
	}

	rect, err := r.FixedF32(4)
	if err != nil {
		return d, fmt.Errorf("texture rect: %w", err)
	}
	copy(d.TextureRect[:], rect)

	rectOffset, err := r.FixedF32(2)
	if err != nil {
		return d, fmt.Errorf("texture rect offset: %w", err)
	}
	copy(d.TextureRectOffset[:], rectOffset)

	if uv.AtLeast(5, 6) {
		atlasOffset, err := r.FixedF32(2)
		if err != nil {
			return d, fmt.Errorf("atlas rect offset: %w", err)
		}
		copy(d.AtlasRectOffset[:], atlasOffset)
	}

	settingsRaw, err := r.U32()
	if err != nil {
		return d, fmt.Errorf("settings raw: %w", err)
	}
	d.Settings = decodeSpriteSettings(settingsRaw)

	if uv.AtLeast(4, 5) {
		transform, err := r.FixedF32(4)
		if err != nil {
			return d, fmt.Errorf("uv transform: %w", err)
		}
		copy(d.UVTransform[:], transform)
	}

	if uv.AtLeast(2017) {
		if d.DownscaleMultiplier, err = r.F32(); err != nil {
			return d, fmt.Errorf("downscale multiplier: %w", err)
		}
	}

	return d, nil
}

// Sprite is a cut rectangle into a Texture2D (directly, or via an atlas)
// plus the render geometry needed to cut and blit it (§4.7).
type Sprite struct {
	Name          string
	Rect          [4]float32
	Offset        [2]float32
	Border        [4]float32
	PixelsToUnits float32
	Pivot         [2]float32
	Extrude       uint32
	IsPolygon     bool

	RenderDataKeyGUID [16]byte
	RenderDataKeyID   int64
	AtlasTags         []string
	AtlasSprite       PPtr[SpriteAtlas]

	RD SpriteRenderData
}

func readSprite(r *binary.Reader, serializedFileFormat int32, uv format.Version) (Sprite, error) {
	var s Sprite

	var err error
	if s.Name, err = r.AlignedString(); err != nil {
		return s, fmt.Errorf("sprite name: %w", err)
	}

	rect, err := r.FixedF32(4)
	if err != nil {
		return s, fmt.Errorf("sprite rect: %w", err)
	}
	copy(s.Rect[:], rect)

	offset, err := r.FixedF32(2)
	if err != nil {
		return s, fmt.Errorf("sprite offset: %w", err)
	}
	copy(s.Offset[:], offset)

	if uv.AtLeast(4, 5) {
		border, err := r.FixedF32(4)
		if err != nil {
			return s, fmt.Errorf("sprite border: %w", err)
		}
		copy(s.Border[:], border)
	}

	if s.PixelsToUnits, err = r.F32(); err != nil {
		return s, fmt.Errorf("sprite pixels to units: %w", err)
	}

	if uv.AtLeast(5, 4, 1) {
		pivot, err := r.FixedF32(2)
		if err != nil {
			return s, fmt.Errorf("sprite pivot: %w", err)
		}
		copy(s.Pivot[:], pivot)
	}

	if s.Extrude, err = r.U32(); err != nil {
		return s, fmt.Errorf("sprite extrude: %w", err)
	}

	if uv.AtLeast(5, 3) {
		if s.IsPolygon, err = r.Bool(); err != nil {
			return s, fmt.Errorf("sprite is polygon: %w", err)
		}
		if err := r.Align(4); err != nil {
			return s, fmt.Errorf("sprite align after polygon flag: %w", err)
		}
	}

	if uv.AtLeast(2017) {
		guid, err := r.ReadBytesCopy(16)
		if err != nil {
			return s, fmt.Errorf("sprite render data key guid: %w", err)
		}
		copy(s.RenderDataKeyGUID[:], guid)
		if s.RenderDataKeyID, err = r.I64(); err != nil {
			return s, fmt.Errorf("sprite render data key id: %w", err)
		}

		tags, err := binary.ReadSlice(r, (*binary.Reader).AlignedString)
		if err != nil {
			return s, fmt.Errorf("sprite atlas tags: %w", err)
		}
		s.AtlasTags = tags

		atlas, err := ReadPPtr[SpriteAtlas](r, serializedFileFormat)
		if err != nil {
			return s, fmt.Errorf("sprite atlas: %w", err)
		}
		s.AtlasSprite = atlas
	}

	rd, err := readSpriteRenderData(r, serializedFileFormat, uv)
	if err != nil {
		return s, fmt.Errorf("sprite render data: %w", err)
	}
	s.RD = rd

	return s, nil
}

// SpriteAtlasData is one packed-sprite entry of a SpriteAtlas's
// render_data_map, keyed by (guid, render_data_key_id) (§4.7).
type SpriteAtlasData = SpriteRenderData

// SpriteAtlas groups multiple Sprites that share packed texture pages
// (§4.7).
type SpriteAtlas struct {
	Name           string
	PackedSprites  []PPtr[Sprite]
	PackedSpriteNamesToIndex []string
	RenderDataMap  map[SpriteAtlasKey]SpriteAtlasData
	Tag            string
	IsVariant      bool
}

// SpriteAtlasKey is the (guid, render_data_key_id) compound key used by
// SpriteAtlas.RenderDataMap.
type SpriteAtlasKey struct {
	GUID [16]byte
	ID   int64
}

func readSpriteAtlas(r *binary.Reader, serializedFileFormat int32, uv format.Version) (SpriteAtlas, error) {
	var a SpriteAtlas

	var err error
	if a.Name, err = r.AlignedString(); err != nil {
		return a, fmt.Errorf("sprite atlas name: %w", err)
	}

	sprites, err := binary.ReadSlice(r, func(rd *binary.Reader) (PPtr[Sprite], error) {
		return ReadPPtr[Sprite](rd, serializedFileFormat)
	})
	if err != nil {
		return a, fmt.Errorf("sprite atlas packed sprites: %w", err)
	}
	a.PackedSprites = sprites

	names, err := binary.ReadSlice(r, (*binary.Reader).AlignedString)
	if err != nil {
		return a, fmt.Errorf("sprite atlas packed sprite names: %w", err)
	}
	a.PackedSpriteNamesToIndex = names

	count, err := r.I32()
	if err != nil {
		return a, fmt.Errorf("sprite atlas render data map count: %w", err)
	}
	a.RenderDataMap = make(map[SpriteAtlasKey]SpriteAtlasData, count)
	for i := int32(0); i < count; i++ {
		var key SpriteAtlasKey
		guid, err := r.ReadBytesCopy(16)
		if err != nil {
			return a, fmt.Errorf("sprite atlas render data %d guid: %w", i, err)
		}
		copy(key.GUID[:], guid)
		if key.ID, err = r.I64(); err != nil {
			return a, fmt.Errorf("sprite atlas render data %d id: %w", i, err)
		}
		rd, err := readSpriteRenderData(r, serializedFileFormat, uv)
		if err != nil {
			return a, fmt.Errorf("sprite atlas render data %d: %w", i, err)
		}
		a.RenderDataMap[key] = rd
	}

	if a.Tag, err = r.AlignedString(); err != nil {
		return a, fmt.Errorf("sprite atlas tag: %w", err)
	}
	if a.IsVariant, err = r.Bool(); err != nil {
		return a, fmt.Errorf("sprite atlas is variant: %w", err)
	}
	if err := r.Align(4); err != nil {
		return a, fmt.Errorf("sprite atlas align after is variant: %w", err)
	}

	return a, nil
}
