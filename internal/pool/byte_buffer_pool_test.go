package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(4)
	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
}

func TestByteBuffer_GrowDoesNotShrink(t *testing.T) {
	bb := NewByteBuffer(BlockBufferDefaultSize * 5)
	_, _ = bb.Write(make([]byte, 10))
	capBefore := cap(bb.B)

	bb.Grow(1)
	assert.Equal(t, capBefore, cap(bb.B), "grow should be a no-op when capacity already suffices")
}

func TestByteBufferPool_DiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.Grow(64)
	_, _ = bb.Write(make([]byte, 64))
	require.Greater(t, cap(bb.B), 32)

	p.Put(bb)

	fresh := p.Get()
	assert.LessOrEqual(t, cap(fresh.B), 64, "oversized buffer should not resurface directly")
}

func TestBlockBufferPool_RoundTrip(t *testing.T) {
	bb := GetBlockBuffer()
	_, _ = bb.Write([]byte("block payload"))
	assert.Equal(t, "block payload", string(bb.Bytes()))
	PutBlockBuffer(bb)
}
