package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-unity/assetkit/errs"
)

func TestReconstructZ_UnitNormal(t *testing.T) {
	// x=0.6, y=0.8 -> x^2+y^2=1, z should be 0.
	assert.InDelta(t, float32(0), reconstructZ(0.6, 0.8), 1e-6)

	// x=y=0 -> z=1.
	assert.InDelta(t, float32(1), reconstructZ(0, 0), 1e-6)
}

func TestReconstructZ_ClampsNegativeRadicand(t *testing.T) {
	// x^2+y^2 > 1 would make the radicand negative; z must clamp to 0, not NaN.
	assert.Equal(t, float32(0), reconstructZ(1, 1))
}

func TestUnpackBoneWeights_StopsEarlyWhenSumReaches31(t *testing.T) {
	weights := []uint32{20, 11, 5, 5, 5}
	boneIndices := []uint32{100, 101, 102, 103, 104, 105}

	bw, bi, err := unpackBoneWeights(weights, boneIndices, 2)
	require.NoError(t, err)

	assert.InDelta(t, float32(20)/31, bw[0][0], 1e-6)
	assert.InDelta(t, float32(11)/31, bw[0][1], 1e-6)
	assert.Equal(t, float32(0), bw[0][2])
	assert.Equal(t, float32(0), bw[0][3])
	assert.Equal(t, [4]int32{100, 101, 0, 0}, bi[0])

	assert.InDelta(t, float32(5)/31, bw[1][0], 1e-6)
	assert.InDelta(t, float32(5)/31, bw[1][1], 1e-6)
	assert.InDelta(t, float32(5)/31, bw[1][2], 1e-6)
	assert.InDelta(t, float32(16)/31, bw[1][3], 1e-6)
	assert.Equal(t, [4]int32{102, 103, 104, 105}, bi[1])
}

func TestUnpackBoneWeights_ExhaustedWeightStream(t *testing.T) {
	_, _, err := unpackBoneWeights([]uint32{1}, []uint32{1, 2, 3, 4}, 1)
	require.ErrorIs(t, err, errs.ErrEndOfInput)
}

func TestUnpackBoneWeights_ExhaustedBoneIndexStream(t *testing.T) {
	_, _, err := unpackBoneWeights([]uint32{1, 1, 1, 1}, []uint32{1, 2}, 1)
	require.ErrorIs(t, err, errs.ErrEndOfInput)
}
