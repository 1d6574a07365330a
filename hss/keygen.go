package hss

import (
	"crypto/rand"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
)

// Keygen generates a fresh HSS key pair for the given parameter list
// (top level first) from a random master seed, returning the
// serialized public key and the initial reference private key. aux, if
// non-nil, is populated with the top-level tree's authentication
// nodes as a side effect of computing the public key.
func Keygen(params []Parameter, aux *auxcache.Cache) (pkBytes []byte, skBytes []byte, err error) {
	if len(params) == 0 || len(params) > common.MAX_HSS_LEVELS {
		return nil, nil, errs.New(errs.ParamMismatch, "HSS parameter list must have between 1 and MAX_HSS_LEVELS levels")
	}
	if _, err := heights(params); err != nil {
		return nil, nil, err
	}

	seed := make([]byte, common.SEED_LEN)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, err
	}

	rk := referenceKey{q: 0, params: params, seed: seed}
	ek, err := expand(rk, aux)
	if err != nil {
		return nil, nil, err
	}
	aux.Seal(seed)

	pk := publicKey{levels: uint32(len(params)), top: ek.levels[0].pub}
	return pk.toBytes(), rk.toBytes(), nil
}

// KeygenFromSeed is Keygen with the master seed supplied by the caller,
// for deterministic test vectors and for SST ceremonies where every
// signing entity must start from the same seed.
func KeygenFromSeed(params []Parameter, seed []byte, aux *auxcache.Cache) (pkBytes []byte, skBytes []byte, err error) {
	if len(params) == 0 || len(params) > common.MAX_HSS_LEVELS {
		return nil, nil, errs.New(errs.ParamMismatch, "HSS parameter list must have between 1 and MAX_HSS_LEVELS levels")
	}
	if uint64(len(seed)) != common.SEED_LEN {
		return nil, nil, errs.New(errs.ParamMismatch, "master seed has the wrong length")
	}

	rk := referenceKey{q: 0, params: params, seed: seed}
	ek, err := expand(rk, aux)
	if err != nil {
		return nil, nil, err
	}
	aux.Seal(seed)

	pk := publicKey{levels: uint32(len(params)), top: ek.levels[0].pub}
	return pk.toBytes(), rk.toBytes(), nil
}

// Lifetime returns the number of messages skBytes can still sign before
// it is exhausted: the total leaf count across every level minus the
// leaves already used, satisfying lifetime(sk) + used_so_far == T.
func Lifetime(skBytes []byte) (uint64, error) {
	rk, err := parseReferenceKey(skBytes)
	if err != nil {
		return 0, err
	}
	hs, err := heights(rk.params)
	if err != nil {
		return 0, err
	}
	total, err := totalHeight(hs)
	if err != nil {
		return 0, err
	}
	limit := uint64(1) << total
	if rk.sst != nil {
		// An SST entity stops at the end of its own top-level leaf range.
		_, leafEnd := rk.sst.LeafRange(hs[0])
		limit = uint64(leafEnd) << (total - hs[0])
	}
	if rk.q >= limit {
		return 0, nil
	}
	return limit - rk.q, nil
}
