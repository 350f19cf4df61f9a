package format

// TextureFormat is Unity's TextureFormat enum value as stored in a
// Texture2D object. Only the formats assetkit's texture package knows how
// to decode are named here; others still round-trip through ObjectInfo
// parsing but fail with errs.ErrUnimplemented at DecodeImage time.
type TextureFormat int32

const (
	TextureFormatAlpha8      TextureFormat = 1
	TextureFormatARGB4444    TextureFormat = 2
	TextureFormatRGB24       TextureFormat = 3
	TextureFormatRGBA32      TextureFormat = 4
	TextureFormatARGB32      TextureFormat = 5
	TextureFormatRGB565      TextureFormat = 7
	TextureFormatR16         TextureFormat = 9
	TextureFormatDXT1        TextureFormat = 10
	TextureFormatDXT5        TextureFormat = 12
	TextureFormatRGBA4444    TextureFormat = 13
	TextureFormatBGRA32      TextureFormat = 14
	TextureFormatRHalf       TextureFormat = 15
	TextureFormatRGHalf      TextureFormat = 16
	TextureFormatRGBAHalf    TextureFormat = 17
	TextureFormatRFloat      TextureFormat = 18
	TextureFormatRGFloat     TextureFormat = 19
	TextureFormatRGBAFloat   TextureFormat = 20
	TextureFormatYUY2        TextureFormat = 21
	TextureFormatRGB9e5Float TextureFormat = 22
	TextureFormatBC6H        TextureFormat = 24
	TextureFormatBC7         TextureFormat = 25
	TextureFormatBC4         TextureFormat = 26
	TextureFormatBC5         TextureFormat = 27
	TextureFormatDXT1Crunched TextureFormat = 28
	TextureFormatDXT5Crunched TextureFormat = 29
	TextureFormatPVRTCRGB2   TextureFormat = 30
	TextureFormatPVRTCRGBA2  TextureFormat = 31
	TextureFormatPVRTCRGB4   TextureFormat = 32
	TextureFormatPVRTCRGBA4  TextureFormat = 33
	TextureFormatETCRGB4     TextureFormat = 34
	TextureFormatATCRGB4     TextureFormat = 35
	TextureFormatATCRGBA8    TextureFormat = 36
	TextureFormatEACR        TextureFormat = 41
	TextureFormatEACRSigned  TextureFormat = 42
	TextureFormatEACRG       TextureFormat = 43
	TextureFormatEACRGSigned TextureFormat = 44
	TextureFormatETC2RGB     TextureFormat = 45
	TextureFormatETC2RGBA1   TextureFormat = 46
	TextureFormatETC2RGBA8   TextureFormat = 47
	TextureFormatASTC_RGB_4x4   TextureFormat = 48
	TextureFormatASTC_RGB_5x5   TextureFormat = 49
	TextureFormatASTC_RGB_6x6   TextureFormat = 50
	TextureFormatASTC_RGB_8x8   TextureFormat = 51
	TextureFormatASTC_RGB_10x10 TextureFormat = 52
	TextureFormatASTC_RGB_12x12 TextureFormat = 53
	TextureFormatASTC_RGBA_4x4   TextureFormat = 54
	TextureFormatASTC_RGBA_5x5   TextureFormat = 55
	TextureFormatASTC_RGBA_6x6   TextureFormat = 56
	TextureFormatASTC_RGBA_8x8   TextureFormat = 57
	TextureFormatASTC_RGBA_10x10 TextureFormat = 58
	TextureFormatASTC_RGBA_12x12 TextureFormat = 59
	TextureFormatRG16            TextureFormat = 62
	TextureFormatR8              TextureFormat = 63
)

// String names a handful of the formats above for diagnostics; the
// exhaustive list lives in the texture package's decoder dispatch table.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatAlpha8:
		return "Alpha8"
	case TextureFormatARGB4444:
		return "ARGB4444"
	case TextureFormatRGB24:
		return "RGB24"
	case TextureFormatRGBA32:
		return "RGBA32"
	case TextureFormatARGB32:
		return "ARGB32"
	case TextureFormatRGB565:
		return "RGB565"
	case TextureFormatR16:
		return "R16"
	case TextureFormatRGBA4444:
		return "RGBA4444"
	case TextureFormatBGRA32:
		return "BGRA32"
	case TextureFormatRHalf:
		return "RHalf"
	case TextureFormatRGHalf:
		return "RGHalf"
	case TextureFormatRGBAHalf:
		return "RGBAHalf"
	case TextureFormatRFloat:
		return "RFloat"
	case TextureFormatRGFloat:
		return "RGFloat"
	case TextureFormatRGBAFloat:
		return "RGBAFloat"
	case TextureFormatYUY2:
		return "YUY2"
	case TextureFormatRGB9e5Float:
		return "RGB9e5Float"
	case TextureFormatETCRGB4:
		return "ETC_RGB4"
	case TextureFormatATCRGB4:
		return "ATC_RGB4"
	case TextureFormatATCRGBA8:
		return "ATC_RGBA8"
	case TextureFormatETC2RGB:
		return "ETC2_RGB"
	case TextureFormatETC2RGBA8:
		return "ETC2_RGBA8"
	case TextureFormatRG16:
		return "RG16"
	case TextureFormatR8:
		return "R8"
	default:
		return "Unsupported"
	}
}

// MeshTopology is Unity's MeshTopology / submesh topology enum.
type MeshTopology int32

const (
	MeshTopologyTriangles     MeshTopology = 0
	MeshTopologyTriangleStrip MeshTopology = 1
	MeshTopologyQuads         MeshTopology = 2
	MeshTopologyLines         MeshTopology = 3
	MeshTopologyLineStrip     MeshTopology = 4
	MeshTopologyPoints        MeshTopology = 5
)

func (t MeshTopology) String() string {
	switch t {
	case MeshTopologyTriangles:
		return "Triangles"
	case MeshTopologyTriangleStrip:
		return "TriangleStrip"
	case MeshTopologyQuads:
		return "Quads"
	case MeshTopologyLines:
		return "Lines"
	case MeshTopologyLineStrip:
		return "LineStrip"
	case MeshTopologyPoints:
		return "Points"
	default:
		return "Unknown"
	}
}
