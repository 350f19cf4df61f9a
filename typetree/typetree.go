package typetree

import "github.com/go-unity/assetkit/binary"

// Parse reads a class's TypeTree, choosing the blob layout for format ≥12
// or ==10 and the legacy recursive layout otherwise (§4.5).
func Parse(r *binary.Reader, serializedFileFormat int32) ([]Node, error) {
	if serializedFileFormat >= 12 || serializedFileFormat == 10 {
		return parseBlob(r)
	}

	return parseLegacy(r, serializedFileFormat)
}
