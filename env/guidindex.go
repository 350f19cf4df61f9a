package env

import "github.com/cespare/xxhash/v2"

// bundleRef locates a loaded bundle for guidIndex's hint lookup.
type bundleRef struct {
	bundleIdx int
}

// guidIndex maps an External's GUID (hashed with xxhash, §3) to the bundle
// that was loaded for it, letting Environment short-circuit repeated
// lookups instead of rescanning every loaded bundle. It is a hint only:
// PPtr resolution itself still matches purely on path_id against the
// flattened object table (§4.7 PPtr, §9 Open Questions), never through
// this index.
type guidIndex struct {
	enabled bool
	byHash  map[uint64]*bundleRef
}

func newGUIDIndex(enabled bool) *guidIndex {
	return &guidIndex{enabled: enabled, byHash: make(map[uint64]*bundleRef)}
}

func (g *guidIndex) record(guid []byte, bundleIdx int) {
	if !g.enabled || len(guid) == 0 {
		return
	}
	h := xxhash.Sum64(guid)
	if _, exists := g.byHash[h]; !exists {
		g.byHash[h] = &bundleRef{bundleIdx: bundleIdx}
	}
}

func (g *guidIndex) lookup(guid []byte) (int, bool) {
	if !g.enabled || len(guid) == 0 {
		return 0, false
	}
	ref, ok := g.byHash[xxhash.Sum64(guid)]
	if !ok {
		return 0, false
	}
	return ref.bundleIdx, true
}
