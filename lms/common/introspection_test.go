package common_test

import (
	"testing"

	"github.com/hbslms/hbslms/lms/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLmOtsIntrospection(t *testing.T) {
	n, err := common.HashOutputSize(common.LMOTS_SHA256_N32_W8)
	require.NoError(t, err)
	assert.Equal(t, uint64(32), n)

	w, err := common.WinternitzWidth(common.LMOTS_SHA256_N32_W8)
	require.NoError(t, err)
	assert.Equal(t, uint8(8), w)

	p, err := common.HashChainCount(common.LMOTS_SHA256_N32_W8)
	require.NoError(t, err)
	assert.Equal(t, uint64(34), p)

	siglen, err := common.SignatureLength(common.LMOTS_SHA256_N32_W8)
	require.NoError(t, err)
	assert.Equal(t, uint64(1124), siglen)
}

func TestLmsIntrospection(t *testing.T) {
	h, err := common.TreeHeight(common.LMS_SHA256_M32_H5)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), h)

	m, err := common.NodeByteLength(common.LMS_SHA256_M32_H5)
	require.NoError(t, err)
	assert.Equal(t, uint64(32), m)

	leaves, err := common.LeafCount(common.LMS_SHA256_M32_H5)
	require.NoError(t, err)
	assert.Equal(t, uint64(32), leaves)
}

func TestIntrospectionRejectsInvalidType(t *testing.T) {
	_, err := common.TreeHeight(common.Uint32ToLmsType(0xffffffff))
	assert.Error(t, err)
}
