package pool

import "sync"

// Typed slice pools used by package mesh when expanding packed vertex
// channels and index buffers (§4.9); reused across mesh.Process calls to
// avoid a fresh allocation per mesh per channel.
var (
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	float32SlicePool = sync.Pool{
		New: func() any { return &[]float32{} },
	}
)

// GetUint32Slice returns a []uint32 of length size and a cleanup function
// that must be called (typically via defer) to return it to the pool.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	s := (*ptr)[:0]

	if cap(s) < size {
		s = make([]uint32, size)
	} else {
		s = s[:size]
	}
	*ptr = s

	return s, func() { uint32SlicePool.Put(ptr) }
}

// GetFloat32Slice returns a []float32 of length size and a cleanup function
// that must be called (typically via defer) to return it to the pool.
func GetFloat32Slice(size int) ([]float32, func()) {
	ptr, _ := float32SlicePool.Get().(*[]float32)
	s := (*ptr)[:0]

	if cap(s) < size {
		s = make([]float32, size)
	} else {
		s = s[:size]
	}
	*ptr = s

	return s, func() { float32SlicePool.Put(ptr) }
}
