package env

import (
	"sync"

	"github.com/go-unity/assetkit/compress"
)

// cacheEntry holds one decoded image, compressed with codec once its raw
// size crosses the configured threshold (§4.10, §5 "Decoded-image cache").
type cacheEntry struct {
	raw        []byte // set when below threshold
	compressed []byte // set when at/above threshold
	rawLen     int
}

// imageCache is Environment's decoded-image cache, keyed by path_id (§5):
// a sync.RWMutex guarding a map, with last-writer-wins semantics on racing
// inserts for the same key (decoded results are deterministic, so two
// writers racing on the same path_id always agree on the value).
type imageCache struct {
	mu        sync.RWMutex
	entries   map[int64]*cacheEntry
	codec     compress.Codec
	threshold int

	hits   int64
	misses int64
}

func newImageCache(codec compress.Codec, threshold int) *imageCache {
	return &imageCache{
		entries:   make(map[int64]*cacheEntry),
		codec:     codec,
		threshold: threshold,
	}
}

func (c *imageCache) get(pathID int64) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[pathID]
	c.mu.RUnlock()
	if !ok {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()

	if e.raw != nil {
		return e.raw, true
	}

	data, err := c.codec.Decompress(e.compressed)
	if err != nil {
		return nil, false
	}

	return data, true
}

func (c *imageCache) put(pathID int64, data []byte) {
	e := &cacheEntry{rawLen: len(data)}
	if len(data) < c.threshold {
		e.raw = data
	} else if compressed, err := c.codec.Compress(data); err == nil {
		e.compressed = compressed
	} else {
		e.raw = data
	}

	c.mu.Lock()
	c.entries[pathID] = e
	c.mu.Unlock()
}

func (c *imageCache) stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
