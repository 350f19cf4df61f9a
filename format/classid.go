package format

// ClassID is a Unity numeric class identifier, as carried by an ObjectInfo
// or a SerializedType.
type ClassID int32

// Canonical Unity class ids for the classes assetkit can materialize.
// SpriteAtlas uses Unity's hashed persistent-class-id scheme rather than a
// small integer.
const (
	ClassGameObject    ClassID = 1
	ClassComponent     ClassID = 2
	ClassTransform     ClassID = 4
	ClassMaterial      ClassID = 21
	ClassMeshRenderer  ClassID = 23
	ClassTexture2D     ClassID = 28
	ClassMesh          ClassID = 43
	ClassTextAsset     ClassID = 49
	ClassRenderer      ClassID = 25
	ClassAudioClip     ClassID = 83
	ClassMonoBehaviour ClassID = 114
	ClassMonoScript    ClassID = 115
	ClassSprite        ClassID = 213
	ClassSpriteAtlas   ClassID = 687078895
)

func (c ClassID) String() string {
	switch c {
	case ClassGameObject:
		return "GameObject"
	case ClassComponent:
		return "Component"
	case ClassTransform:
		return "Transform"
	case ClassMaterial:
		return "Material"
	case ClassMeshRenderer:
		return "MeshRenderer"
	case ClassTexture2D:
		return "Texture2D"
	case ClassMesh:
		return "Mesh"
	case ClassTextAsset:
		return "TextAsset"
	case ClassRenderer:
		return "Renderer"
	case ClassAudioClip:
		return "AudioClip"
	case ClassMonoBehaviour:
		return "MonoBehaviour"
	case ClassMonoScript:
		return "MonoScript"
	case ClassSprite:
		return "Sprite"
	case ClassSpriteAtlas:
		return "SpriteAtlas"
	default:
		return "Unknown"
	}
}
