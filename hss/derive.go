package hss

import (
	"encoding/binary"

	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
)

// rootIdentity derives the top-level tree's (id, seed) pair from the
// master seed alone. Child levels are derived from their parent via
// deriveChild; the top level has no parent, so it derives from a fixed
// domain-separated hash of the master seed instead.
//
// Derivation always uses SHA-256, independent of any level's
// configured hash variant: this is a key-schedule PRF, not part of the
// signature's hash-algorithm surface, so there is no reason to let a
// SHAKE256 parameter choice change how seeds are split.
func rootIdentity(masterSeed []byte) (common.ID, []byte) {
	idDigest := sha256Sum(masterSeed, common.D_CHILD_SEED[:], []byte{0x00})
	seedDigest := sha256Sum(masterSeed, common.D_CHILD_SEED[:], []byte{0x01})
	var id common.ID
	copy(id[:], idDigest[:common.ID_LEN])
	return id, seedDigest[:common.SEED_LEN]
}

// deriveChild computes the (id, seed) pair for the subordinate level
// signed by leaf q of the parent level:
// child_seed = H(seed ‖ I_parent ‖ u32(q) ‖ D_CHILD_SEED ‖ 0x01). The
// child identifier is derived the same way with trailing tag byte 0x00
// instead, so (id, seed) never collide.
func deriveChild(parentSeed []byte, parentID common.ID, q uint32) (common.ID, []byte) {
	var qBE [4]byte
	binary.BigEndian.PutUint32(qBE[:], q)

	idDigest := sha256Sum(parentSeed, parentID[:], qBE[:], common.D_CHILD_SEED[:], []byte{0x00})
	seedDigest := sha256Sum(parentSeed, parentID[:], qBE[:], common.D_CHILD_SEED[:], []byte{0x01})

	var id common.ID
	copy(id[:], idDigest[:common.ID_LEN])
	return id, seedDigest[:common.SEED_LEN]
}

// heights returns each level's LMS tree height, validating every
// parameter in the list even after the first failure so a caller
// debugging a bad parameter list sees every bad level at once.
func heights(params []Parameter) ([]uint64, error) {
	acc := errs.NewAccumulator(errs.ParamMismatch)
	hs := make([]uint64, len(params))
	for i, p := range params {
		lp, err := p.Lms.LmsParams()
		if err != nil {
			acc.Add(err)
			continue
		}
		if _, err := p.Ots.Params(); err != nil {
			acc.Add(err)
			continue
		}
		hs[i] = lp.H
	}
	if err := acc.Err("invalid HSS parameter list"); err != nil {
		return nil, err
	}
	return hs, nil
}

// totalHeight sums the per-level heights, erroring if the total would
// overflow the reference private key's 64-bit q field.
func totalHeight(hs []uint64) (uint64, error) {
	var sum uint64
	for _, h := range hs {
		sum += h
		if sum > 63 {
			return 0, errs.New(errs.ParamMismatch, "HSS parameter list lifetime exceeds a 64-bit leaf counter")
		}
	}
	return sum, nil
}

// splitQ decomposes the global used-leaves counter q into one index per
// level, most significant (top level) first: a mixed-radix expansion
// with radix 2^{h_i} at level i.
func splitQ(q uint64, hs []uint64) []uint32 {
	idx := make([]uint32, len(hs))
	for i := len(hs) - 1; i >= 0; i-- {
		idx[i] = uint32(q & ((uint64(1) << hs[i]) - 1))
		q >>= hs[i]
	}
	return idx
}

// joinQ is the inverse of splitQ.
func joinQ(idx []uint32, hs []uint64) uint64 {
	var q uint64
	for i := range hs {
		q = (q << hs[i]) | uint64(idx[i])
	}
	return q
}
