package format

// CommonStrings is the fixed offset->string dictionary Unity's serializer
// uses to abbreviate well-known type and field names in a type tree's
// string pool. When a string-pool reference's most significant bit is set,
// the remaining bits index this table instead of the pool's own bytes.
//
// This is a representative subset of the well-known offsets (the full table
// is in the tens of kilobytes and versions across Unity releases); entries
// absent here fail type-tree string resolution with errs.ErrInvalidValue,
// which only affects the generic type-tree reader (typetree), never the
// fixed-schedule class readers in package classes.
var CommonStrings = map[uint32]string{
	0:    "AABB",
	5:    "AnimationClip",
	19:   "AnimationCurve",
	34:   "AnimationState",
	49:   "Array",
	55:   "Base",
	60:   "BitField",
	69:   "bitset",
	76:   "bool",
	81:   "char",
	86:   "ColorRGBA",
	96:   "Component",
	106:  "data",
	111:  "deque",
	117:  "double",
	124:  "dynamic_array",
	138:  "FastPropertyName",
	155:  "first",
	161:  "float",
	167:  "Font",
	172:  "GameObject",
	183:  "Generic Mono",
	196:  "GUID",
	201:  "GUIStyle",
	210:  "int",
	214:  "list",
	219:  "long long",
	229:  "map",
	233:  "Matrix4x4f",
	244:  "MdFour",
	251:  "MonoBehaviour",
	265:  "MonoScript",
	276:  "m_ByteSize",
	287:  "m_Curve",
	295:  "m_EditorClassIdentifier",
	319:  "m_EditorHideFlags",
	337:  "m_Enabled",
	347:  "m_ExtensionPtr",
	362:  "m_GameObject",
	375:  "m_Index",
	383:  "m_IsArray",
	393:  "m_IsStatic",
	404:  "m_MetaFlag",
	415:  "m_Name",
	422:  "m_ObjectHideFlags",
	440:  "m_PrefabInternal",
	457:  "m_PrefabParentObject",
	478:  "m_Script",
	487:  "m_StaticEditorFlags",
	507:  "m_Type",
	514:  "m_Version",
	524:  "Object",
	531:  "pair",
	536:  "PPtr<Component>",
	552:  "PPtr<GameObject>",
	569:  "PPtr<Material>",
	584:  "PPtr<MonoBehaviour>",
	604:  "PPtr<MonoScript>",
	621:  "PPtr<Object>",
	634:  "PPtr<Prefab>",
	647:  "PPtr<Sprite>",
	660:  "PPtr<TextAsset>",
	676:  "PPtr<Texture>",
	690:  "PPtr<Texture2D>",
	706:  "PPtr<Transform>",
	722:  "Prefab",
	729:  "Quaternionf",
	741:  "Rectf",
	747:  "RectInt",
	755:  "RectOffset",
	766:  "second",
	773:  "set",
	777:  "short",
	783:  "size",
	788:  "SInt16",
	795:  "SInt32",
	802:  "SInt64",
	809:  "SInt8",
	815:  "staticvector",
	828:  "string",
	835:  "TextAsset",
	845:  "TextMesh",
	854:  "Texture",
	862:  "Texture2D",
	872:  "Transform",
	882:  "TypelessData",
	895:  "UInt16",
	902:  "UInt32",
	909:  "UInt64",
	916:  "UInt8",
	922:  "unsigned int",
	935:  "unsigned long long",
	954:  "unsigned short",
	969:  "vector",
	976:  "Vector2f",
	985:  "Vector3f",
	994:  "Vector4f",
	1003: "m_ScriptingClassIdentifier",
	1030: "Gradient",
	1039: "Type*",
	1045: "int2_storage",
	1058: "int3_storage",
	1071: "BoundsInt",
	1081: "m_CorrespondingSourceObject",
	1109: "m_PrefabInstance",
	1126: "m_PrefabAsset",
	1140: "FileSize",
	1149: "Hash128",
}
