package sst_test

import (
	"testing"

	"github.com/hbslms/hbslms/hss"
	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/sst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sstParams() []hss.Parameter {
	return []hss.Parameter{
		{Lms: common.LMS_SHA256_M32_H5, Ots: common.LMOTS_SHA256_N32_W8},
	}
}

// TestJointKeygenMatchesMonolithic checks that splitting one top-level
// tree's leaves among several signing entities and recombining their
// subtree roots produces the same public key a single-party Keygen over
// the same seed would.
func TestJointKeygenMatchesMonolithic(t *testing.T) {
	params := sstParams()
	seed := make([]byte, common.SEED_LEN)
	for i := range seed {
		seed[i] = byte(i + 7)
	}

	monolithicPk, _, err := hss.KeygenFromSeed(params, seed, nil)
	require.NoError(t, err)

	const topDivHeight = 2 // 4 signing entities over a height-5 tree
	numEntities := uint32(1) << topDivHeight

	nodeValues := make([][]byte, numEntities)
	var skBytesByEntity [][]byte
	for i := uint32(0); i < numEntities; i++ {
		ext := common.SstExtension{SigningEntityIdx: i, TopDivHeight: topDivHeight}
		skBytes, nodeValue, err := sst.GenKey1(params, seed, ext, nil)
		require.NoError(t, err)
		nodeValues[i] = nodeValue
		skBytesByEntity = append(skBytesByEntity, skBytes)
	}

	for _, skBytes := range skBytesByEntity {
		n, err := sst.NumSigningEntities(skBytes)
		require.NoError(t, err)
		assert.Equal(t, numEntities, n)

		jointPk, err := sst.GenKey2(skBytes, nodeValues, nil)
		require.NoError(t, err)
		assert.Equal(t, monolithicPk, jointPk)
	}
}

func TestJoinSSTRejectsWrongNodeValueCount(t *testing.T) {
	params := sstParams()
	seed := make([]byte, common.SEED_LEN)

	ext := common.SstExtension{SigningEntityIdx: 0, TopDivHeight: 2}
	skBytes, nodeValue, err := sst.GenKey1(params, seed, ext, nil)
	require.NoError(t, err)

	_, err = sst.GenKey2(skBytes, [][]byte{nodeValue}, nil)
	assert.Error(t, err)
}

func TestGenKey1RejectsTopDivHeightExceedingTreeHeight(t *testing.T) {
	params := sstParams()
	seed := make([]byte, common.SEED_LEN)

	ext := common.SstExtension{SigningEntityIdx: 0, TopDivHeight: 6}
	_, _, err := sst.GenKey1(params, seed, ext, nil)
	assert.Error(t, err)
}

// TestSigningEntityRefusedBeyondAssignedRange signs across one SST
// entity's entire assigned leaf range and checks that the next attempt
// is refused instead of wandering into a neighboring entity's range
// (which would rederive a one-time key that entity also derives from
// the same shared seed).
func TestSigningEntityRefusedBeyondAssignedRange(t *testing.T) {
	params := sstParams()
	seed := make([]byte, common.SEED_LEN)
	for i := range seed {
		seed[i] = byte(i + 3)
	}

	const topDivHeight = 2 // 4 entities over a height-5 (32-leaf) tree: 8 leaves each
	ext := common.SstExtension{SigningEntityIdx: 1, TopDivHeight: topDivHeight}
	skBytes, _, err := sst.GenKey1(params, seed, ext, nil)
	require.NoError(t, err)

	leaves := uint64(1) << 5
	rangeSize := leaves / (uint64(1) << topDivHeight)

	for i := uint64(0); i < rangeSize; i++ {
		var updated []byte
		_, err := hss.Sign([]byte("msg"), skBytes, func(b []byte) error {
			updated = b
			return nil
		}, nil)
		require.NoError(t, err, "entity should be able to sign leaf %d of its own range", i)
		skBytes = updated
	}

	_, err = hss.Sign([]byte("one too many"), skBytes, func([]byte) error { return nil }, nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.Exhausted, kind)
}

func TestNumSigningEntitiesRejectsNonSstKey(t *testing.T) {
	params := sstParams()
	_, skBytes, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	_, err = sst.NumSigningEntities(skBytes)
	assert.Error(t, err)
}
