package env

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/classes"
	"github.com/go-unity/assetkit/format"
	"github.com/go-unity/assetkit/internal/options"
)

func cstr(s string) []byte { return append([]byte(s), 0) }

func alignedString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	buf = append(buf, []byte(s)...)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}

	return buf
}

func pad4(buf []byte) []byte {
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}

	return buf
}

// textAssetPayload builds the on-disk bytes of one TextAsset object
// (readTextAsset's shape): an aligned name string followed by a raw
// length-prefixed byte blob, read against its own zero-based Reader.
func textAssetPayload(name string, script []byte) []byte {
	var buf []byte
	buf = alignedString(buf, name)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(script)))
	buf = append(buf, script...)

	return buf
}

// buildSerializedFile assembles a format-17 SerializedFile containing one
// SerializedType (class TextAsset) and len(objects) ObjectInfo entries,
// each pointing at the matching payload appended after the header. This
// mirrors asset.buildMinimalAsset, extended with a populated type and
// object table (§4.4).
func buildSerializedFile(t *testing.T, payloads [][]byte) []byte {
	t.Helper()

	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, 0)  // metadata_size
	buf = binary.BigEndian.AppendUint32(buf, 0)  // file_size
	buf = binary.BigEndian.AppendUint32(buf, 17) // format
	buf = binary.BigEndian.AppendUint32(buf, 0)  // data_offset

	buf = append(buf, 1)       // endian byte: non-zero => big-endian
	buf = append(buf, 0, 0, 0) // reserved (format>=9)

	buf = append(buf, cstr("2019.4.1f1")...) // engine version (format>=7)

	buf = binary.BigEndian.AppendUint32(buf, 0) // target platform (format>=8)
	buf = append(buf, 0)                        // enable_type_tree: false (format>=13)

	buf = binary.BigEndian.AppendUint32(buf, 1) // type_count = 1

	// SerializedType #0: class TextAsset (49).
	buf = binary.BigEndian.AppendUint32(buf, uint32(format.ClassTextAsset))
	buf = append(buf, 0)                             // is_stripped (format>=16): false
	buf = binary.BigEndian.AppendUint16(buf, 0xFFFF) // script_type_index (format>=17): -1
	buf = append(buf, make([]byte, 16)...)           // old_type_hash (format>=13)

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(payloads))) // object_count

	// Reserve space for ObjectInfo entries; fill in ByteStart once payload
	// offsets are known, since ByteStart is measured from the start of this
	// whole buffer and payloads are appended after the header.
	objInfoStart := len(buf)
	for range payloads {
		buf = pad4(buf)                             // Align(4) before path_id (format>=14)
		buf = binary.BigEndian.AppendUint64(buf, 0) // path_id placeholder
		buf = binary.BigEndian.AppendUint32(buf, 0) // byte_start placeholder
		buf = binary.BigEndian.AppendUint32(buf, 0) // byte_size placeholder
		buf = binary.BigEndian.AppendUint32(buf, 0) // type_id placeholder
	}

	buf = binary.BigEndian.AppendUint32(buf, 0) // script_type_count (format>=11)
	buf = binary.BigEndian.AppendUint32(buf, 0) // external_count
	buf = append(buf, cstr("")...)              // user_information (format>=5)

	// Append payloads now that the header is fixed length, then backfill
	// each ObjectInfo entry with its real path_id/byte_start/byte_size.
	type objLoc struct{ headerOff, dataOff, size int }
	var locs []objLoc
	for i, p := range payloads {
		dataOff := len(buf)
		buf = append(buf, p...)
		locs = append(locs, objLoc{headerOff: 0, dataOff: dataOff, size: len(p)})
		_ = i
	}

	// Recompute header offsets by re-walking the same layout we emitted
	// above (object entries are fixed-width once path_id alignment is
	// known relative to objInfoStart).
	off := objInfoStart
	for i, loc := range locs {
		for off%4 != 0 {
			off++
		}
		pathIDOff := off
		off += 8
		byteStartOff := off
		off += 4
		byteSizeOff := off
		off += 4
		typeIDOff := off
		off += 4

		binary.BigEndian.PutUint64(buf[pathIDOff:pathIDOff+8], uint64(i+1))
		binary.BigEndian.PutUint32(buf[byteStartOff:byteStartOff+4], uint32(loc.dataOff))
		binary.BigEndian.PutUint32(buf[byteSizeOff:byteSizeOff+4], uint32(loc.size))
		binary.BigEndian.PutUint32(buf[typeIDOff:typeIDOff+4], 0)
	}

	return buf
}

// buildUnityFS wraps a single SerializedFile payload in a minimal,
// uncompressed UnityFS bundle (§4.3), the same layout bundle_test.go's
// buildUnityFS exercises.
func buildUnityFS(t *testing.T, path string, payload []byte) []byte {
	t.Helper()

	var dir []byte
	dir = append(dir, make([]byte, 16)...) // content hash, ignored

	dir = binary.BigEndian.AppendUint32(dir, 1) // block_count
	dir = binary.BigEndian.AppendUint32(dir, uint32(len(payload)))
	dir = binary.BigEndian.AppendUint32(dir, uint32(len(payload)))
	dir = binary.BigEndian.AppendUint16(dir, 0) // flags: CompressionNone

	dir = binary.BigEndian.AppendUint32(dir, 1) // node_count
	dir = binary.BigEndian.AppendUint64(dir, 0)
	dir = binary.BigEndian.AppendUint64(dir, uint64(len(payload)))
	dir = binary.BigEndian.AppendUint32(dir, 0)
	dir = append(dir, cstr(path)...)

	var buf []byte
	buf = append(buf, cstr("UnityFS")...)
	buf = append(buf, cstr("6")...)
	buf = append(buf, cstr("2019.4.1f1")...)
	buf = append(buf, cstr("abcdef0")...)

	buf = binary.BigEndian.AppendUint64(buf, uint64(len(buf)+8+len(dir)+len(payload)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(dir)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(dir)))
	buf = binary.BigEndian.AppendUint32(buf, 0)

	buf = append(buf, dir...)
	buf = append(buf, payload...)

	return buf
}

func TestLoad_ObjectsInOrder(t *testing.T) {
	p1 := textAssetPayload("first", []byte("one"))
	p2 := textAssetPayload("second", []byte("two"))
	sf := buildSerializedFile(t, [][]byte{p1, p2})
	bundleData := buildUnityFS(t, "CAB-0123456789abcdef", sf)

	e := New()
	require.NoError(t, e.Load(bundleData))

	var pathIDs []int64
	for h := range e.Objects() {
		pathIDs = append(pathIDs, h.PathID())
		assert.Equal(t, format.ClassTextAsset, h.Class())
	}
	assert.Equal(t, []int64{1, 2}, pathIDs)

	stats := e.Stats()
	assert.Equal(t, 1, stats.Bundles)
	assert.Equal(t, 1, stats.SerializedFiles)
	assert.Equal(t, 2, stats.Objects)
}

func TestFindObjectAndDecode(t *testing.T) {
	p1 := textAssetPayload("greeting", []byte("hello world"))
	sf := buildSerializedFile(t, [][]byte{p1})
	bundleData := buildUnityFS(t, "CAB-0123456789abcdef", sf)

	e := New()
	require.NoError(t, e.Load(bundleData))

	h, ok := e.FindObject(1)
	require.True(t, ok)

	ta, err := ReadTextAsset(h)
	require.NoError(t, err)
	assert.Equal(t, "greeting", ta.Name)
	assert.Equal(t, "hello world", ta.ScriptString())

	_, ok = e.FindObject(999)
	assert.False(t, ok)
}

func TestFindByPathID_ResolvesAndCaches(t *testing.T) {
	p1 := textAssetPayload("only", []byte("payload"))
	sf := buildSerializedFile(t, [][]byte{p1})
	bundleData := buildUnityFS(t, "CAB-0123456789abcdef", sf)

	e := New()
	require.NoError(t, e.Load(bundleData))

	v, ok := e.FindByPathID(1)
	require.True(t, ok)
	ta, ok := v.(classes.TextAsset)
	require.True(t, ok)
	assert.Equal(t, "only", ta.Name)

	// Second lookup hits the decoded-value cache; same value comes back.
	v2, ok := e.FindByPathID(1)
	require.True(t, ok)
	assert.Equal(t, v, v2)

	_, ok = e.FindByPathID(42)
	assert.False(t, ok)
}

func TestImageCache_RawBelowThresholdCompressedAbove(t *testing.T) {
	c := newImageCache(stubCodec{}, 8)

	small := []byte("tiny")
	c.put(1, small)
	got, ok := c.get(1)
	require.True(t, ok)
	assert.Equal(t, small, got)

	big := make([]byte, 32)
	for i := range big {
		big[i] = byte(i)
	}
	c.put(2, big)
	assert.Nil(t, c.entries[1].compressed)
	assert.Equal(t, byte(0xFF), c.entries[2].compressed[0])
	got2, ok := c.get(2)
	require.True(t, ok)
	assert.Equal(t, big, got2)

	_, ok = c.get(3)
	assert.False(t, ok)

	hits, misses := c.stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

// stubCodec marks its compressed output so the test can tell compression
// actually ran, without pulling in a real codec dependency for this unit.
type stubCodec struct{}

func (stubCodec) Compress(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)+1)
	out = append(out, 0xFF)
	return append(out, data...), nil
}

func (stubCodec) Decompress(data []byte) ([]byte, error) {
	return data[1:], nil
}

func TestGUIDIndex_HintOnly(t *testing.T) {
	g := newGUIDIndex(true)
	guid := []byte("0123456789abcdef")

	_, ok := g.lookup(guid)
	assert.False(t, ok)

	g.record(guid, 3)
	idx, ok := g.lookup(guid)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	// First writer wins on a repeat record for the same GUID.
	g.record(guid, 7)
	idx, ok = g.lookup(guid)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestGUIDIndex_Disabled(t *testing.T) {
	g := newGUIDIndex(false)
	g.record([]byte("guid"), 1)

	_, ok := g.lookup([]byte("guid"))
	assert.False(t, ok)
}

func TestWithImageCacheCodec_RejectsNil(t *testing.T) {
	cfg := defaultConfig()
	err := options.Apply(cfg, WithImageCacheCodec(nil))
	assert.Error(t, err)
}
