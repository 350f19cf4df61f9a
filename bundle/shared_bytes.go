package bundle

import (
	"sync/atomic"

	"github.com/go-unity/assetkit/internal/pool"
)

// SharedBytes is a reference-counted view over a decompressed block image
// (§5 "Shared resources": block/file buffers are reference-counted byte
// vectors; the buffer is freed, i.e. returned to the pool, when the last
// reference is dropped).
//
// Multiple Assets and streamed-resource lookups within the same bundle hold
// references to the same underlying buffer via Slice; none of them copy.
type SharedBytes struct {
	buf    *pool.ByteBuffer
	refs   *atomic.Int32
	offset int
	length int
}

// NewSharedBytes wraps buf (owning its full contents) with a single initial
// reference.
func NewSharedBytes(buf *pool.ByteBuffer) *SharedBytes {
	refs := &atomic.Int32{}
	refs.Store(1)

	return &SharedBytes{buf: buf, refs: refs, offset: 0, length: buf.Len()}
}

// Bytes returns the referenced byte range. The returned slice is only valid
// as long as the caller (or a Retain'd clone) holds a reference.
func (s *SharedBytes) Bytes() []byte {
	return s.buf.Bytes()[s.offset : s.offset+s.length]
}

// Len returns the length of the referenced range.
func (s *SharedBytes) Len() int { return s.length }

// Retain increments the reference count and returns s, so call sites can
// hand out a retained reference inline: `node.data = shared.Retain()`.
func (s *SharedBytes) Retain() *SharedBytes {
	s.refs.Add(1)
	return s
}

// Slice returns a new SharedBytes over [off, off+n) of the same backing
// buffer, sharing the reference count with s (counted as one additional
// reference).
func (s *SharedBytes) Slice(off, n int) *SharedBytes {
	s.refs.Add(1)

	return &SharedBytes{buf: s.buf, refs: s.refs, offset: s.offset + off, length: n}
}

// Release decrements the reference count, returning the backing buffer to
// its pool once the last reference is dropped. Calling Release more times
// than there are outstanding references is a caller bug; it only protects
// against returning the buffer to the pool twice.
func (s *SharedBytes) Release() {
	if s.refs.Add(-1) == 0 {
		pool.PutBlockBuffer(s.buf)
	}
}
