package compress_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/compress"
	"github.com/go-unity/assetkit/format"
)

func TestBlockCodec_None(t *testing.T) {
	codec, err := compress.BlockCodec(format.CompressionNone)
	require.NoError(t, err)

	data := []byte("hello bundle")
	out, err := codec.Decompress(data, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestBlockCodec_None_SizeMismatch(t *testing.T) {
	codec, _ := compress.BlockCodec(format.CompressionNone)
	_, err := codec.Decompress([]byte("abc"), 10)
	assert.Error(t, err)
}

func TestBlockCodec_UnknownCompression(t *testing.T) {
	_, err := compress.BlockCodec(format.BlockCompression(99))
	assert.Error(t, err)
}

func TestImageCacheCodecs_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xCA, 0xFE, 0xBA, 0xBE}, 4096)

	codecs := map[string]compress.Codec{
		"none": compress.NewNoneImageCacheCodec(),
		"zstd": compress.NewZstdImageCacheCodec(),
		"s2":   compress.NewS2ImageCacheCodec(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}
