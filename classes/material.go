package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// Shader is referenced only by PPtr from Material; assetkit does not parse
// shader bytecode.
type Shader struct {
	Name string
}

// TexEnv is one entry of a Material's tex_envs map: the bound texture plus
// its UV scale/offset (§4.7).
type TexEnv struct {
	Texture PPtr[Texture2D]
	Scale   [2]float32
	Offset  [2]float32
}

// UnityPropertySheet is a Material's shader-property table, keyed by
// property name within each value kind (§4.7).
type UnityPropertySheet struct {
	TexEnvs map[string]TexEnv
	Ints    map[string]int32
	Floats  map[string]float32
	Colors  map[string][4]float32
}

// Material binds a Shader to a UnityPropertySheet plus render-state
// overrides (§4.7).
type Material struct {
	Name           string
	Shader         PPtr[Shader]
	ShaderKeywords []string
	LightmapFlags  uint32
	EnableInstancingVariants bool
	CustomRenderQueue        int32
	StringTags     map[string]string
	DisabledShaderPasses []string
	SavedProperties UnityPropertySheet
}

// ResolveTexture resolves the PPtr bound to a named tex_envs slot (e.g.
// "_MainTex") through res, saving callers the FindByPathID + type-assert
// boilerplate PPtr otherwise requires. Uses the narrower Resolver interface
// rather than a concrete Environment, for the same reason Sprite.DecodeImage
// does (classes must not import package env).
func (m Material) ResolveTexture(res Resolver, slot string) (Texture2D, error) {
	te, ok := m.SavedProperties.TexEnvs[slot]
	if !ok {
		return Texture2D{}, fmt.Errorf("%w: material %q has no tex_envs slot %q", errs.ErrInvalidValue, m.Name, slot)
	}
	tex, ok := te.Texture.Get(res)
	if !ok {
		return Texture2D{}, fmt.Errorf("%w: material %q slot %q texture (path id %d)",
			errs.ErrObjectNotFound, m.Name, slot, te.Texture.PathID)
	}

	return tex, nil
}

func readMaterial(r *binary.Reader, serializedFileFormat int32, uv format.Version) (Material, error) {
	var m Material

	var err error
	if m.Name, err = r.AlignedString(); err != nil {
		return m, fmt.Errorf("material name: %w", err)
	}

	sh, err := ReadPPtr[Shader](r, serializedFileFormat)
	if err != nil {
		return m, fmt.Errorf("material shader: %w", err)
	}
	m.Shader = sh

	if uv.AtLeast(4, 2) {
		if uv.AtLeast(2021, 3) {
			keywords, err := binary.ReadSlice(r, (*binary.Reader).AlignedString)
			if err != nil {
				return m, fmt.Errorf("material shader keywords: %w", err)
			}
			m.ShaderKeywords = keywords
		} else {
			kw, err := r.AlignedString()
			if err != nil {
				return m, fmt.Errorf("material shader keywords: %w", err)
			}
			m.ShaderKeywords = splitSpace(kw)
		}
	}

	if uv.AtLeast(5, 6) {
		if m.LightmapFlags, err = r.U32(); err != nil {
			return m, fmt.Errorf("material lightmap flags: %w", err)
		}
	}

	if uv.AtLeast(5, 6) {
		if m.EnableInstancingVariants, err = r.Bool(); err != nil {
			return m, fmt.Errorf("material enable instancing: %w", err)
		}
		if err := r.Align(4); err != nil {
			return m, fmt.Errorf("material align after instancing flag: %w", err)
		}
	}

	if uv.AtLeast(4, 3) {
		if m.CustomRenderQueue, err = r.I32(); err != nil {
			return m, fmt.Errorf("material custom render queue: %w", err)
		}
	}

	if uv.AtLeast(5, 1) {
		count, err := r.I32()
		if err != nil {
			return m, fmt.Errorf("material string tag count: %w", err)
		}
		m.StringTags = make(map[string]string, count)
		for i := int32(0); i < count; i++ {
			k, err := r.AlignedString()
			if err != nil {
				return m, fmt.Errorf("material string tag %d key: %w", i, err)
			}
			v, err := r.AlignedString()
			if err != nil {
				return m, fmt.Errorf("material string tag %d value: %w", i, err)
			}
			m.StringTags[k] = v
		}
	}

	if uv.AtLeast(5, 5) {
		passes, err := binary.ReadSlice(r, (*binary.Reader).AlignedString)
		if err != nil {
			return m, fmt.Errorf("material disabled shader passes: %w", err)
		}
		m.DisabledShaderPasses = passes
	}

	sheet, err := readUnityPropertySheet(r, serializedFileFormat, uv)
	if err != nil {
		return m, fmt.Errorf("material saved properties: %w", err)
	}
	m.SavedProperties = sheet

	return m, nil
}

func readUnityPropertySheet(r *binary.Reader, serializedFileFormat int32, uv format.Version) (UnityPropertySheet, error) {
	var sheet UnityPropertySheet

	texCount, err := r.I32()
	if err != nil {
		return sheet, fmt.Errorf("tex_envs count: %w", err)
	}
	sheet.TexEnvs = make(map[string]TexEnv, texCount)
	for i := int32(0); i < texCount; i++ {
		name, err := r.AlignedString()
		if err != nil {
			return sheet, fmt.Errorf("tex_envs %d name: %w", i, err)
		}
		tex, err := ReadPPtr[Texture2D](r, serializedFileFormat)
		if err != nil {
			return sheet, fmt.Errorf("tex_envs %d texture: %w", i, err)
		}
		scale, err := r.FixedF32(2)
		if err != nil {
			return sheet, fmt.Errorf("tex_envs %d scale: %w", i, err)
		}
		offset, err := r.FixedF32(2)
		if err != nil {
			return sheet, fmt.Errorf("tex_envs %d offset: %w", i, err)
		}
		var te TexEnv
		te.Texture = tex
		copy(te.Scale[:], scale)
		copy(te.Offset[:], offset)
		sheet.TexEnvs[name] = te
	}

	if uv.AtLeast(2021) {
		intCount, err := r.I32()
		if err != nil {
			return sheet, fmt.Errorf("ints count: %w", err)
		}
		sheet.Ints = make(map[string]int32, intCount)
		for i := int32(0); i < intCount; i++ {
			name, err := r.AlignedString()
			if err != nil {
				return sheet, fmt.Errorf("ints %d name: %w", i, err)
			}
			val, err := r.I32()
			if err != nil {
				return sheet, fmt.Errorf("ints %d value: %w", i, err)
			}
			sheet.Ints[name] = val
		}
	}

	floatCount, err := r.I32()
	if err != nil {
		return sheet, fmt.Errorf("floats count: %w", err)
	}
	sheet.Floats = make(map[string]float32, floatCount)
	for i := int32(0); i < floatCount; i++ {
		name, err := r.AlignedString()
		if err != nil {
			return sheet, fmt.Errorf("floats %d name: %w", i, err)
		}
		val, err := r.F32()
		if err != nil {
			return sheet, fmt.Errorf("floats %d value: %w", i, err)
		}
		sheet.Floats[name] = val
	}

	colorCount, err := r.I32()
	if err != nil {
		return sheet, fmt.Errorf("colors count: %w", err)
	}
	sheet.Colors = make(map[string][4]float32, colorCount)
	for i := int32(0); i < colorCount; i++ {
		name, err := r.AlignedString()
		if err != nil {
			return sheet, fmt.Errorf("colors %d name: %w", i, err)
		}
		c, err := r.FixedF32(4)
		if err != nil {
			return sheet, fmt.Errorf("colors %d value: %w", i, err)
		}
		var rgba [4]float32
		copy(rgba[:], c)
		sheet.Colors[name] = rgba
	}

	return sheet, nil
}

func splitSpace(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
