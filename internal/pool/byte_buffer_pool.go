// Package pool provides sync.Pool-backed reusable buffers for the
// allocation-heavy inner loops of bundle decompression and mesh
// reconstruction.
package pool

import "sync"

// Default and maximum sizes for the block-image buffer pool. A typical
// UnityFS bundle's decompressed block stream ranges from a few hundred KB
// (small prefab bundles) to tens of MB (texture-heavy scene bundles), so the
// default starts modest and the threshold caps how large a buffer the pool
// will retain rather than discard.
const (
	BlockBufferDefaultSize  = 1024 * 256       // 256KiB
	BlockBufferMaxThreshold = 1024 * 1024 * 64 // 64MiB
)

// ByteBuffer is a growable byte buffer meant to be reused via ByteBufferPool
// across bundle loads, avoiding a fresh allocation for every block's
// decompressed append buffer (bundle.assembleBlocks, §4.3 step 7).
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the buffer's current contents.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer while retaining its backing array for reuse.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Grow ensures the buffer can accept at least n more bytes without
// reallocating, using the teacher's size-tiered growth policy: small
// buffers grow by a fixed default chunk to minimize reallocation churn,
// larger ones grow by a quarter of their current capacity.
func (bb *ByteBuffer) Grow(n int) {
	available := cap(bb.B) - len(bb.B)
	if available >= n {
		return
	}

	growBy := BlockBufferDefaultSize
	if cap(bb.B) > 4*BlockBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer, growing it as needed. It implements
// io.Writer so block decompressors can write directly into the pooled
// buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// ByteBufferPool pools ByteBuffers of a given default size, discarding
// buffers that grew past maxThreshold instead of retaining them (avoids one
// enormous scene bundle bloating the pool for every subsequent small load).
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded (not retained) once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool, allocating one if empty.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool, discarding it instead if it grew beyond the
// pool's maxThreshold.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var blockBufferPool = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)

// GetBlockBuffer retrieves a ByteBuffer from the shared block-image pool.
func GetBlockBuffer() *ByteBuffer { return blockBufferPool.Get() }

// PutBlockBuffer returns bb to the shared block-image pool.
func PutBlockBuffer(bb *ByteBuffer) { blockBufferPool.Put(bb) }
