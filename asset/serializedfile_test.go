package asset

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalAsset assembles a SerializedFile at format 17 with zero
// types, zero objects, zero externals — enough to exercise every
// unconditional header branch without needing a real type tree.
func buildMinimalAsset(t *testing.T) []byte {
	t.Helper()

	cstr := func(s string) []byte { return append([]byte(s), 0) }

	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, 0)  // metadata_size
	buf = binary.BigEndian.AppendUint32(buf, 0)  // file_size
	buf = binary.BigEndian.AppendUint32(buf, 17) // format version
	buf = binary.BigEndian.AppendUint32(buf, 0)  // data_offset

	buf = append(buf, 1)       // endian byte: non-zero => stays big-endian
	buf = append(buf, 0, 0, 0) // 3 reserved bytes (format>=9)

	buf = append(buf, cstr("2019.4.1f1")...) // engine version (format>=7)

	buf = binary.BigEndian.AppendUint32(buf, 0) // target platform (format>=8)
	buf = append(buf, 0)                        // enable_type_tree (format>=13): false

	buf = binary.BigEndian.AppendUint32(buf, 0) // type_count = 0
	// format 17 is not in [7,14) so no big-id flag
	buf = binary.BigEndian.AppendUint32(buf, 0) // object_count = 0
	// format 17 >= 11, so script type count follows
	buf = binary.BigEndian.AppendUint32(buf, 0) // script_type_count = 0
	buf = binary.BigEndian.AppendUint32(buf, 0) // external_count = 0
	// format 17 < 20, no ref types
	buf = append(buf, cstr("")...) // user_information (format>=5)

	return buf
}

func TestParse_MinimalHeader(t *testing.T) {
	raw := buildMinimalAsset(t)

	f, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, int32(17), f.Format)
	assert.False(t, f.LittleEndian)
	assert.Equal(t, 2019, f.UnityVersion.Major)
	assert.Empty(t, f.Types)
	assert.Empty(t, f.Objects)
	assert.Empty(t, f.Externals)
}
