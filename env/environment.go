// Package env ties the lower packages together into the single entry point
// most callers use: load one or more bundles, then range over or look up
// the objects they contain (§6).
package env

import (
	"fmt"
	"iter"
	"sync"

	"github.com/go-unity/assetkit/asset"
	"github.com/go-unity/assetkit/bundle"
	"github.com/go-unity/assetkit/internal/options"
)

// Stats reports a snapshot of Environment's loaded state and cache
// performance, a convenience beyond what SPEC_FULL.md's minimal API
// requires but cheap to keep accurate as Load and FindByPathID run.
type Stats struct {
	Bundles          int
	SerializedFiles  int
	Objects          int
	ImageCacheHits   int64
	ImageCacheMisses int64
}

// Environment owns every bundle loaded into it and the flattened, in-order
// object table (§5 Ordering guarantees: bundles in load order, serialized
// files in bundle order, objects in ObjectInfo order) that Objects and
// FindObject range over.
type Environment struct {
	cfg *config

	mu              sync.RWMutex
	bundles         []*bundle.Bundle
	serializedFiles int
	objects         []*ObjectHandle
	byPathID        map[int64]*ObjectHandle

	decodedMu sync.Mutex
	decoded   map[int64]any

	images *imageCache
	guids  *guidIndex
}

// New builds an Environment, applying opts over the default config
// (§4.10). A construction error (e.g. a nil codec) panics, matching the
// teacher's functional-option constructors that return a concrete value
// rather than an error from New itself; validate option inputs before
// passing them if that's a concern.
func New(opts ...Option) *Environment {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		panic(fmt.Sprintf("env: invalid option: %v", err))
	}

	return &Environment{
		cfg:      cfg,
		byPathID: make(map[int64]*ObjectHandle),
		decoded:  make(map[int64]any),
		images:   newImageCache(cfg.imageCacheCodec, cfg.imageCacheThreshold),
		guids:    newGUIDIndex(cfg.guidIndexEnabled),
	}
}

// Load parses data as a UnityFS bundle and appends its objects to the
// environment's flattened table (§4.3, §5). Every File in the bundle is
// speculatively parsed as a SerializedFile; one that fails to parse (a
// streamed resource file named by a sibling StreamingInfo, not a
// SerializedFile itself) is kept in the bundle for later Find lookups but
// contributes no objects of its own.
func (e *Environment) Load(data []byte) error {
	b, err := bundle.Parse(data)
	if err != nil {
		return fmt.Errorf("env: load bundle: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	bundleIdx := len(e.bundles)
	e.bundles = append(e.bundles, b)

	for fileIdx, f := range b.Files {
		sf, err := asset.Parse(f.Data.Bytes())
		if err != nil {
			continue // streamed resource file, not a SerializedFile
		}
		sf.Path = f.Path

		e.serializedFiles++

		for _, ext := range sf.Externals {
			e.guids.record(ext.GUID, bundleIdx)
		}

		raw := f.Data.Bytes()
		for objIdx, info := range sf.Objects {
			end := info.ByteStart + int64(info.ByteSize)
			if info.ByteStart < 0 || end > int64(len(raw)) {
				return fmt.Errorf("env: object %d byte range [%d,%d) exceeds file size %d",
					info.PathID, info.ByteStart, end, len(raw))
			}

			h := &ObjectHandle{
				env:       e,
				bundleIdx: bundleIdx,
				fileIdx:   fileIdx,
				objIdx:    objIdx,
				bundle:    b,
				file:      sf,
				info:      info,
				data:      raw[info.ByteStart:end],
			}

			e.objects = append(e.objects, h)
			e.byPathID[info.PathID] = h
		}
	}

	return nil
}

// Objects iterates every loaded object in load order (§5, §6).
func (e *Environment) Objects() iter.Seq[*ObjectHandle] {
	return func(yield func(*ObjectHandle) bool) {
		e.mu.RLock()
		snapshot := make([]*ObjectHandle, len(e.objects))
		copy(snapshot, e.objects)
		e.mu.RUnlock()

		for _, h := range snapshot {
			if !yield(h) {
				return
			}
		}
	}
}

// FindObject returns the handle for pathID, if one has been loaded.
func (e *Environment) FindObject(pathID int64) (*ObjectHandle, bool) {
	e.mu.RLock()
	h, ok := e.byPathID[pathID]
	e.mu.RUnlock()

	return h, ok
}

// FindByPathID implements classes.Resolver: it resolves and decodes the
// object at pathID, caching the decoded value so repeated PPtr
// dereferences of the same object (common for shared materials and
// textures) only decode once.
func (e *Environment) FindByPathID(pathID int64) (any, bool) {
	e.decodedMu.Lock()
	if v, ok := e.decoded[pathID]; ok {
		e.decodedMu.Unlock()
		return v, true
	}
	e.decodedMu.Unlock()

	h, ok := e.FindObject(pathID)
	if !ok {
		return nil, false
	}

	v, err := h.Decode()
	if err != nil {
		return nil, false
	}

	e.decodedMu.Lock()
	e.decoded[pathID] = v
	e.decodedMu.Unlock()

	return v, true
}

// CachedImage and CacheImage expose the decoded-image cache to callers that
// want to memoize Texture2D.DecodeImage results against the object's own
// path id, the key the cache is designed around (§4.10, §5).
func (e *Environment) CachedImage(pathID int64) ([]byte, bool) {
	return e.images.get(pathID)
}

// CacheImage stores a decoded image under pathID for future CachedImage
// lookups.
func (e *Environment) CacheImage(pathID int64, data []byte) {
	e.images.put(pathID, data)
}

// ResolveGUID returns the index of the loaded bundle that satisfied
// External ext's GUID, if the index has seen it (§3). A miss does not
// mean the bundle wasn't loaded: the index is a hint built only from
// GUIDs actually recorded during Load, never consulted by PPtr resolution
// itself.
func (e *Environment) ResolveGUID(guid []byte) (int, bool) {
	return e.guids.lookup(guid)
}

// Stats reports the current bundle/object counts and image cache hit
// rate.
func (e *Environment) Stats() Stats {
	e.mu.RLock()
	s := Stats{Bundles: len(e.bundles), SerializedFiles: e.serializedFiles, Objects: len(e.objects)}
	e.mu.RUnlock()

	s.ImageCacheHits, s.ImageCacheMisses = e.images.stats()

	return s
}
