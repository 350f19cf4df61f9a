package typetree

import (
	"fmt"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

// msbSet is the high bit Unity sets on a string-pool offset to indicate it
// indexes the engine's fixed common-string dictionary instead of the local
// per-type string pool (§4.5, §GLOSSARY).
const msbSet uint32 = 0x80000000

// resolveString looks up a string-table offset: if its MSB is set, the
// remaining bits index format.CommonStrings; otherwise it's a byte offset
// into pool, read as a NUL-terminated string.
func resolveString(offset uint32, pool []byte) (string, error) {
	if offset&msbSet != 0 {
		idx := offset &^ msbSet
		s, ok := format.CommonStrings[idx]
		if !ok {
			return "", fmt.Errorf("%w: common string index %d not in table", errs.ErrInvalidValue, idx)
		}

		return s, nil
	}

	if int(offset) >= len(pool) {
		return "", fmt.Errorf("%w: string pool offset %d exceeds pool length %d", errs.ErrInvalidValue, offset, len(pool))
	}

	end := int(offset)
	for end < len(pool) && pool[end] != 0 {
		end++
	}

	return string(pool[offset:end]), nil
}
