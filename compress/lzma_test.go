package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"
)

// encodeUnityStyleLZMA compresses src with the standard library's LZMA
// writer, then strips the 8-byte uncompressed-size field Unity omits,
// matching what a real UnityFS block looks like on the wire.
func encodeUnityStyleLZMA(t *testing.T, src []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	full := buf.Bytes()
	require.GreaterOrEqual(t, len(full), 13)

	// full = 5-byte props + 8-byte size + compressed stream.
	// Unity's dialect drops the size field.
	out := make([]byte, 0, len(full)-8)
	out = append(out, full[0:5]...)
	out = append(out, full[13:]...)

	return out
}

func TestLZMACodec_Decompress(t *testing.T) {
	src := bytes.Repeat([]byte("Unity serialized asset bytes"), 32)
	encoded := encodeUnityStyleLZMA(t, src)

	codec := LZMACodec{}
	out, err := codec.Decompress(encoded, len(src))
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestLZMACodec_TruncatedProps(t *testing.T) {
	codec := LZMACodec{}
	_, err := codec.Decompress([]byte{1, 2}, 10)
	assert.Error(t, err)
}
