package compress

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZ4Codec_Decompress(t *testing.T) {
	src := bytes.Repeat([]byte("unity bundle payload "), 64)

	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst)
	require.NoError(t, err)
	require.NotZero(t, n, "payload should be compressible")

	codec := LZ4Codec{}
	out, err := codec.Decompress(dst[:n], len(src))
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestLZ4Codec_Decompress_Empty(t *testing.T) {
	codec := LZ4Codec{}
	out, err := codec.Decompress(nil, 0)
	require.NoError(t, err)
	assert.Nil(t, out)
}
