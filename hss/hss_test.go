package hss_test

import (
	"errors"
	"testing"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/hss"
	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastParams(levels int) []hss.Parameter {
	params := make([]hss.Parameter, levels)
	for i := range params {
		params[i] = hss.Parameter{Lms: common.LMS_SHA256_M32_H5, Ots: common.LMOTS_SHA256_N32_W8}
	}
	return params
}

func TestSignVerifyRoundTrip(t *testing.T) {
	params := fastParams(1)
	pk, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	msg := []byte("a stateful message")
	var newSk []byte
	sig, err := hss.Sign(msg, sk, func(b []byte) error {
		newSk = b
		return nil
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, newSk)
	assert.NotEqual(t, sk, newSk)

	assert.True(t, hss.Verify(msg, sig, pk))
	assert.False(t, hss.Verify([]byte("a different message"), sig, pk))
}

func TestMultiLevelSignVerify(t *testing.T) {
	params := fastParams(2)
	pk, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	msg := []byte("multi-level HSS message")
	sig, err := hss.Sign(msg, sk, func([]byte) error { return nil }, nil)
	require.NoError(t, err)

	assert.True(t, hss.Verify(msg, sig, pk))
}

func TestKeygenFromSeedIsDeterministic(t *testing.T) {
	params := fastParams(1)
	seed := make([]byte, common.SEED_LEN)
	for i := range seed {
		seed[i] = byte(i)
	}

	pk1, sk1, err := hss.KeygenFromSeed(params, seed, nil)
	require.NoError(t, err)
	pk2, sk2, err := hss.KeygenFromSeed(params, seed, nil)
	require.NoError(t, err)

	assert.Equal(t, pk1, pk2)
	assert.Equal(t, sk1, sk2)
}

func TestSigningUpdatesKeyAndExhausts(t *testing.T) {
	params := fastParams(1)
	_, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	total, err := hss.Lifetime(sk)
	require.NoError(t, err)

	for i := uint64(0); i < total; i++ {
		remaining, err := hss.Lifetime(sk)
		require.NoError(t, err)
		assert.Equal(t, total-i, remaining)

		var next []byte
		_, err = hss.Sign([]byte("message"), sk, func(b []byte) error {
			next = b
			return nil
		}, nil)
		require.NoError(t, err)
		sk = next
	}

	remaining, err := hss.Lifetime(sk)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), remaining)

	_, err = hss.Sign([]byte("one too many"), sk, func([]byte) error { return nil }, nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.Exhausted, kind)
}

func TestUpdateCallbackFailureSurfaces(t *testing.T) {
	params := fastParams(1)
	_, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	_, err = hss.Sign([]byte("msg"), sk, func([]byte) error {
		return errors.New("persistence failed")
	}, nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.CallbackFailure, kind)
}

func TestSignWithAuxCacheMatchesWithoutAtHssLevel(t *testing.T) {
	params := fastParams(1)
	seed := make([]byte, common.SEED_LEN)
	for i := range seed {
		seed[i] = byte(i + 1)
	}

	pkPlain, _, err := hss.KeygenFromSeed(params, seed, nil)
	require.NoError(t, err)

	buf := make([]byte, 1+8*32+32)
	aux, err := auxcache.Load(buf, 32, seed)
	require.NoError(t, err)
	pkCached, skCached, err := hss.KeygenFromSeed(params, seed, aux)
	require.NoError(t, err)
	assert.True(t, aux.Valid())
	assert.Equal(t, pkPlain, pkCached)

	msg := []byte("cached hss signing")
	sig, err := hss.Sign(msg, skCached, func([]byte) error { return nil }, aux)
	require.NoError(t, err)
	assert.True(t, hss.Verify(msg, sig, pkCached))
}

func TestSignMutProducesVerifiableSignature(t *testing.T) {
	params := fastParams(1)
	pk, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	msgBuf := make([]byte, 16+32)
	copy(msgBuf, []byte("fast verify msg!"))

	var newSk []byte
	sig, iterations, err := hss.SignMut(msgBuf, sk, func(b []byte) error {
		newSk = b
		return nil
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, newSk)
	assert.Greater(t, iterations, uint64(0))

	assert.True(t, hss.Verify(msgBuf, sig, pk))
}

// TestSignMutRejectsReusedNonzeroTail checks that a message buffer
// whose reserved nonce tail is already non-zero on entry (as if it
// were accidentally reused from a prior SignMut call) is refused
// instead of silently signed.
func TestSignMutRejectsReusedNonzeroTail(t *testing.T) {
	params := fastParams(1)
	_, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	msgBuf := make([]byte, 16+32)
	copy(msgBuf, []byte("fast verify msg!"))
	msgBuf[len(msgBuf)-1] = 0x01

	_, _, err = hss.SignMut(msgBuf, sk, func([]byte) error { return nil }, nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.FastVerifyMisuse, kind)
}

func TestSignMutRejectsShortBuffer(t *testing.T) {
	params := fastParams(1)
	_, sk, err := hss.Keygen(params, nil)
	require.NoError(t, err)

	_, _, err = hss.SignMut(make([]byte, 4), sk, func([]byte) error { return nil }, nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.FastVerifyMisuse, kind)
}

func TestVerifyRejectsWrongLevelCount(t *testing.T) {
	pk1, _, err := hss.Keygen(fastParams(1), nil)
	require.NoError(t, err)
	_, sk2, err := hss.Keygen(fastParams(2), nil)
	require.NoError(t, err)

	msg := []byte("mismatched levels")
	sig, err := hss.Sign(msg, sk2, func([]byte) error { return nil }, nil)
	require.NoError(t, err)

	assert.False(t, hss.Verify(msg, sig, pk1))
}

func TestKeygenRejectsEmptyParams(t *testing.T) {
	_, _, err := hss.Keygen(nil, nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ParamMismatch, kind)
}
