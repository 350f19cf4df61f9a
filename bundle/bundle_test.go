package bundle

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildUnityFS assembles a minimal, uncompressed UnityFS bundle containing a
// single node named path with the given payload, matching §4.3's layout
// exactly (format version 6, so no post-header 16-byte alignment applies).
func buildUnityFS(t *testing.T, path string, payload []byte) []byte {
	t.Helper()

	cstr := func(s string) []byte { return append([]byte(s), 0) }

	var dir []byte
	dir = append(dir, make([]byte, 16)...) // content hash, ignored

	dir = binary.BigEndian.AppendUint32(dir, 1) // block_count

	dir = binary.BigEndian.AppendUint32(dir, uint32(len(payload))) // u_size
	dir = binary.BigEndian.AppendUint32(dir, uint32(len(payload))) // c_size
	dir = binary.BigEndian.AppendUint16(dir, 0)                    // flags: CompressionNone

	dir = binary.BigEndian.AppendUint32(dir, 1) // node_count
	dir = binary.BigEndian.AppendUint64(dir, 0) // offset
	dir = binary.BigEndian.AppendUint64(dir, uint64(len(payload)))
	dir = binary.BigEndian.AppendUint32(dir, 0) // node flags
	dir = append(dir, cstr(path)...)

	var buf []byte
	buf = append(buf, cstr("UnityFS")...)
	buf = append(buf, cstr("6")...)
	buf = append(buf, cstr("2019.4.1f1")...)
	buf = append(buf, cstr("abcdef0")...)

	buf = binary.BigEndian.AppendUint64(buf, uint64(len(buf)+8+len(dir)+len(payload)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(dir))) // compressed_dir_size
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(dir))) // uncompressed_dir_size
	buf = binary.BigEndian.AppendUint32(buf, 0)                // flags: inline dir, no padding, None compression

	buf = append(buf, dir...)
	buf = append(buf, payload...)

	return buf
}

func TestParse_SingleUncompressedNode(t *testing.T) {
	payload := []byte("hello unity asset body")
	raw := buildUnityFS(t, "CAB-abcdef0123456789", payload)

	b, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "UnityFS", b.Header.Signature)
	require.Len(t, b.Files, 1)
	assert.Equal(t, "CAB-abcdef0123456789", b.Files[0].Path)
	assert.Equal(t, payload, b.Files[0].Data.Bytes())

	b.Files[0].Data.Release()
}

func TestParse_UnsupportedSignature(t *testing.T) {
	raw := append([]byte("FSB5"), 0)
	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParse_NodeRangeExceedsImage(t *testing.T) {
	payload := []byte("short")
	raw := buildUnityFS(t, "bad-node", payload)

	// Corrupt the node size field (last 4+path bytes back from payload) to
	// exceed the image length. Simpler: just re-derive with a hand-crafted
	// oversized size by re-running the builder logic inline.
	t.Helper()

	cstr := func(s string) []byte { return append([]byte(s), 0) }

	var dir []byte
	dir = append(dir, make([]byte, 16)...)
	dir = binary.BigEndian.AppendUint32(dir, 1)
	dir = binary.BigEndian.AppendUint32(dir, uint32(len(payload)))
	dir = binary.BigEndian.AppendUint32(dir, uint32(len(payload)))
	dir = binary.BigEndian.AppendUint16(dir, 0)
	dir = binary.BigEndian.AppendUint32(dir, 1)
	dir = binary.BigEndian.AppendUint64(dir, 0)
	dir = binary.BigEndian.AppendUint64(dir, uint64(len(payload)+1000)) // oversized
	dir = binary.BigEndian.AppendUint32(dir, 0)
	dir = append(dir, cstr("bad-node")...)

	var buf []byte
	buf = append(buf, cstr("UnityFS")...)
	buf = append(buf, cstr("6")...)
	buf = append(buf, cstr("2019.4.1f1")...)
	buf = append(buf, cstr("abcdef0")...)
	buf = binary.BigEndian.AppendUint64(buf, 0)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(dir)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(dir)))
	buf = binary.BigEndian.AppendUint32(buf, 0)
	buf = append(buf, dir...)
	buf = append(buf, payload...)

	_, err := Parse(buf)
	require.Error(t, err)

	_ = raw
}
