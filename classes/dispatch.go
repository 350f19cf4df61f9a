package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// Context carries everything a class reader needs beyond the object's own
// byte range: the owning SerializedFile's structural format (for PPtr
// width and a handful of gated fields), the engine version that gates
// most per-class fields, and the bundle a streamed payload's sibling node
// is resolved against.
type Context struct {
	SerializedFileFormat int32
	EngineVersion         format.Version
	Bundle                *bundle.Bundle

	// FilePath is the owning SerializedFile's own bundle node name, needed
	// only by pre-5.0 AudioClip's externally stored data (§4.7), which
	// references its own file's node rather than an inline path string.
	FilePath string
}

// Read dispatches to the reader for classID and returns the decoded value
// as any, or errs.ErrUnimplemented if no reader is registered (§9 Design
// Notes: "avoid a heavyweight inheritance hierarchy; prefer a small
// per-class function table").
func Read(classID format.ClassID, r *binary.Reader, ctx Context) (any, error) {
	switch classID {
	case format.ClassGameObject:
		return readGameObject(r, ctx.SerializedFileFormat, ctx.EngineVersion)
	case format.ClassComponent:
		return readComponent(r, ctx.SerializedFileFormat)
	case format.ClassTransform:
		return readTransform(r, ctx.SerializedFileFormat)
	case format.ClassMaterial:
		return readMaterial(r, ctx.SerializedFileFormat, ctx.EngineVersion)
	case format.ClassRenderer:
		return readRenderer(r, ctx.SerializedFileFormat, ctx.EngineVersion)
	case format.ClassMeshRenderer:
		return readMeshRenderer(r, ctx.SerializedFileFormat, ctx.EngineVersion)
	case format.ClassTexture2D:
		return readTexture2D(r, ctx.EngineVersion, ctx.Bundle)
	case format.ClassMesh:
		return readMesh(r, ctx.SerializedFileFormat, ctx.EngineVersion, ctx.Bundle)
	case format.ClassTextAsset:
		return readTextAsset(r)
	case format.ClassAudioClip:
		return readAudioClip(r, ctx.EngineVersion, ctx.Bundle, ctx.FilePath)
	case format.ClassMonoBehaviour:
		return readMonoBehaviour(r, ctx.SerializedFileFormat)
	case format.ClassMonoScript:
		return readMonoScript(r, ctx.EngineVersion)
	case format.ClassSprite:
		return readSprite(r, ctx.SerializedFileFormat, ctx.EngineVersion)
	case format.ClassSpriteAtlas:
		return readSpriteAtlas(r, ctx.SerializedFileFormat, ctx.EngineVersion)
	default:
		return nil, fmt.Errorf("%w: class id %d", errs.ErrUnimplemented, classID)
	}
}
