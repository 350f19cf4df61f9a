package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/errs"
	"github.com/go-unity/assetkit/format"
)

func TestIndicesForSubMesh_16Bit(t *testing.T) {
	buf := []byte{1, 0, 2, 0, 3, 0, 4, 0} // little-endian u16 1,2,3,4
	out, err := indicesForSubMesh(buf, true, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3, 4}, out)
}

func TestIndicesForSubMesh_32Bit(t *testing.T) {
	buf := []byte{5, 0, 0, 0, 6, 0, 0, 0}
	out, err := indicesForSubMesh(buf, false, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 6}, out)
}

func TestIndicesForSubMesh_WindowExceedsBuffer(t *testing.T) {
	_, err := indicesForSubMesh([]byte{1, 2}, true, 0, 5)
	require.ErrorIs(t, err, errs.ErrEndOfInput)
}

func TestTriangulate_Triangles_TruncatesToMultipleOfThree(t *testing.T) {
	out, err := triangulate(format.MeshTopologyTriangles, []uint32{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, out)
}

func TestTriangulate_TriangleStrip_WindingAndDegenerateSkip(t *testing.T) {
	out, err := triangulate(format.MeshTopologyTriangleStrip, []uint32{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2, 2, 3, 4}, out)

	degenerate, err := triangulate(format.MeshTopologyTriangleStrip, []uint32{0, 1, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, degenerate)
}

func TestTriangulate_Quads(t *testing.T) {
	out, err := triangulate(format.MeshTopologyQuads, []uint32{0, 1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, out)
	assert.Len(t, out, 8*3/2)
}

func TestTriangulate_LinesUnimplemented(t *testing.T) {
	_, err := triangulate(format.MeshTopologyLines, []uint32{0, 1, 2, 3})
	require.ErrorIs(t, err, errs.ErrUnimplemented)
}
