package env

import (
	"fmt"

	"github.com/go-unity/assetkit/classes"
)

// Typed readers live here rather than on classes.ReadXxx(*env.ObjectHandle)
// as originally sketched: that shape would make classes import env, which
// would cycle back since env already imports classes for its dispatch
// table. decodeAs gets the same ergonomics from the other side of the
// cycle instead.
func decodeAs[T any](h *ObjectHandle) (T, error) {
	var zero T

	v, err := h.Decode()
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("object %d: decoded as %T, not %T", h.PathID(), v, zero)
	}

	return t, nil
}

// ReadGameObject decodes h as a classes.GameObject.
func ReadGameObject(h *ObjectHandle) (classes.GameObject, error) {
	return decodeAs[classes.GameObject](h)
}

// ReadComponent decodes h as a classes.Component.
func ReadComponent(h *ObjectHandle) (classes.Component, error) { return decodeAs[classes.Component](h) }

// ReadTransform decodes h as a classes.Transform.
func ReadTransform(h *ObjectHandle) (classes.Transform, error) { return decodeAs[classes.Transform](h) }

// ReadMaterial decodes h as a classes.Material.
func ReadMaterial(h *ObjectHandle) (classes.Material, error) { return decodeAs[classes.Material](h) }

// ReadRenderer decodes h as a classes.Renderer.
func ReadRenderer(h *ObjectHandle) (classes.Renderer, error) { return decodeAs[classes.Renderer](h) }

// ReadMeshRenderer decodes h as a classes.MeshRenderer.
func ReadMeshRenderer(h *ObjectHandle) (classes.MeshRenderer, error) {
	return decodeAs[classes.MeshRenderer](h)
}

// ReadTexture2D decodes h as a classes.Texture2D.
func ReadTexture2D(h *ObjectHandle) (classes.Texture2D, error) { return decodeAs[classes.Texture2D](h) }

// ReadMesh decodes h as a classes.Mesh.
func ReadMesh(h *ObjectHandle) (classes.Mesh, error) { return decodeAs[classes.Mesh](h) }

// ReadTextAsset decodes h as a classes.TextAsset.
func ReadTextAsset(h *ObjectHandle) (classes.TextAsset, error) { return decodeAs[classes.TextAsset](h) }

// ReadAudioClip decodes h as a classes.AudioClip.
func ReadAudioClip(h *ObjectHandle) (classes.AudioClip, error) { return decodeAs[classes.AudioClip](h) }

// ReadMonoBehaviour decodes h as a classes.MonoBehaviour.
func ReadMonoBehaviour(h *ObjectHandle) (classes.MonoBehaviour, error) {
	return decodeAs[classes.MonoBehaviour](h)
}

// ReadMonoScript decodes h as a classes.MonoScript.
func ReadMonoScript(h *ObjectHandle) (classes.MonoScript, error) {
	return decodeAs[classes.MonoScript](h)
}

// ReadSprite decodes h as a classes.Sprite.
func ReadSprite(h *ObjectHandle) (classes.Sprite, error) { return decodeAs[classes.Sprite](h) }

// ReadSpriteAtlas decodes h as a classes.SpriteAtlas.
func ReadSpriteAtlas(h *ObjectHandle) (classes.SpriteAtlas, error) {
	return decodeAs[classes.SpriteAtlas](h)
}
