// Package lms implements Leighton-Micali Hash-Based Signatures (RFC 8554)
//
// This file implements the private key and signing logic.
package lms

import (
	"encoding/binary"
	"errors"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/lms/ots"

	"crypto/rand"
	"io"
)

// NewPrivateKey returns a LmsPrivateKey, seeded by a cryptographically secure
// random number generator.
func NewPrivateKey(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType) (LmsPrivateKey, error) {
	var err error
	tc, err = tc.LmsType()
	if err != nil {
		return LmsPrivateKey{}, err
	}
	params, err := tc.LmsParams()
	if err != nil {
		return LmsPrivateKey{}, err
	}

	seed := make([]byte, params.M)
	_, err = rand.Read(seed)
	if err != nil {
		return LmsPrivateKey{}, err
	}
	idbytes := make([]byte, common.ID_LEN)
	_, err = rand.Read(idbytes)
	if err != nil {
		return LmsPrivateKey{}, err
	}
	id := common.ID(idbytes)

	return NewPrivateKeyFromSeed(tc, otstc, id, seed)
}

// NewPrivateKeyFromSeed returns a new LmsPrivateKey, using the algorithm from
// Appendix A of <https://datatracker.ietf.org/doc/html/rfc8554#appendix-A>
func NewPrivateKeyFromSeed(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType, id common.ID, seed []byte) (LmsPrivateKey, error) {
	tc, err := tc.LmsType()
	if err != nil {
		return LmsPrivateKey{}, err
	}
	otstc, err = otstc.LmsOtsType()
	if err != nil {
		return LmsPrivateKey{}, err
	}
	return LmsPrivateKey{
		typecode: tc,
		otstype:  otstc,
		q:        0,
		id:       id,
		seed:     seed,
	}, nil
}

// NewSstPrivateKey is NewPrivateKeyFromSeed restricted to the disjoint
// leaf range owned by one Single Subtree signing entity. leafStart and
// leafEnd bound the half-open range of q values this key will ever be
// asked to sign; Sign refuses to run past leafEnd the same way a plain
// LmsPrivateKey refuses to run past 2^H.
func NewSstPrivateKey(tc common.LmsAlgorithmType, otstc common.LmsOtsAlgorithmType, id common.ID, seed []byte, leafStart, leafEnd uint32) (LmsPrivateKey, error) {
	if leafStart >= leafEnd {
		return LmsPrivateKey{}, errors.New("NewSstPrivateKey(): empty or inverted leaf range")
	}
	priv, err := NewPrivateKeyFromSeed(tc, otstc, id, seed)
	if err != nil {
		return LmsPrivateKey{}, err
	}
	priv.q = leafStart
	priv.sstRangeEnd = leafEnd
	return priv, nil
}

// Public returns an LmsPublicKey that validates signatures for this
// private key. aux, if non-nil, is consulted (and, on first use,
// populated) for the nodes closest to the root, avoiding a full
// 2^H-leaf recomputation on every call.
func (priv *LmsPrivateKey) Public(aux *auxcache.Cache) (LmsPublicKey, error) {
	root, err := priv.TreeNode(1, aux)
	if err != nil {
		return LmsPublicKey{}, err
	}
	return LmsPublicKey{
		typecode: priv.typecode,
		otstype:  priv.otstype,
		id:       priv.id,
		k:        root,
	}, nil
}

// TreeNode returns the value of Merkle tree node r (1-indexed, root = 1)
// of this key's tree. Unlike Public, which always resolves the root,
// this lets a caller reach any node in the tree — in particular the
// subtree root a Single Subtree signing entity owns, which sits above
// its own leaves but below the full tree's root.
func (priv *LmsPrivateKey) TreeNode(r uint32, aux *auxcache.Cache) ([]byte, error) {
	params, err := priv.typecode.LmsParams()
	if err != nil {
		return nil, err
	}
	return treeElement(priv.otstype, priv.id, priv.seed, r, uint32(1)<<params.H, aux)
}

// Sign calculates the LMS signature of a chosen message.
// The rng argument is optional. If nil is provided, crypto/rand.Reader will be used.
// aux, if non-nil, is consulted (and, on first use, populated) for the
// authentication path nodes closest to the root.
func (priv *LmsPrivateKey) Sign(msg []byte, rng io.Reader, aux *auxcache.Cache) (LmsSignature, error) {
	if rng == nil {
		rng = rand.Reader
	}
	otsparams, err := priv.otstype.Params()
	if err != nil {
		return LmsSignature{}, err
	}
	c := make([]byte, otsparams.N)
	if _, err := rng.Read(c); err != nil {
		return LmsSignature{}, err
	}
	sig, _, err := priv.signWithRandomizer(msg, c, aux)
	return sig, err
}

// SignWithRandomizer is Sign with the LM-OTS randomizer C fixed by the
// caller instead of drawn from an rng, and reports how many Winternitz
// hash-chain steps the signer spent producing it. A fast-verify signer
// calls this many times with different candidate C values and keeps the
// one that spent the most signer-side steps, which is exactly the one
// that leaves the least work for a verifier.
func (priv *LmsPrivateKey) SignWithRandomizer(msg []byte, c []byte, aux *auxcache.Cache) (LmsSignature, uint64, error) {
	return priv.signWithRandomizer(msg, c, aux)
}

func (priv *LmsPrivateKey) signWithRandomizer(msg []byte, c []byte, aux *auxcache.Cache) (LmsSignature, uint64, error) {
	params, err := priv.typecode.LmsParams()
	if err != nil {
		return LmsSignature{}, 0, err
	}
	height := int(params.H)
	var leaves uint32 = 1 << height
	limit := leaves
	if priv.sstRangeEnd != 0 && priv.sstRangeEnd < limit {
		limit = priv.sstRangeEnd
	}
	if priv.q >= limit {
		return LmsSignature{}, 0, errors.New("Sign(): invalid private key")
	}
	ots_priv, err := ots.NewPrivateKeyFromSeed(priv.otstype, priv.q, priv.id, priv.seed)
	if err != nil {
		return LmsSignature{}, 0, err
	}
	ots_sig, hashIterations, err := ots_priv.SignWithRandomizer(msg, c)
	if err != nil {
		return LmsSignature{}, 0, err
	}

	authpath, err := authPath(priv.otstype, priv.id, priv.seed, priv.q, height, aux)
	if err != nil {
		return LmsSignature{}, 0, err
	}

	// We increment q to signal that this leaf should not be reused
	priv.incrementQ()

	return LmsSignature{
		priv.typecode,
		priv.q - 1,
		ots_sig,
		authpath,
	}, hashIterations, nil
}

// Private
func (priv *LmsPrivateKey) incrementQ() {
	priv.q++
}

// ToBytes() serialized the private key into a byte string for storage.
// The current value of the internal counter, q, is included.
func (priv *LmsPrivateKey) ToBytes() []byte {
	var serialized []byte
	var u32_be [4]byte

	// First 4 bytes: typecode
	typecode, _ := priv.typecode.LmsType()
	// ToBytes() is only ever called on a valid object, so this will never return an error
	binary.BigEndian.PutUint32(u32_be[:], typecode.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	// Next 4 bytes: OTS typecode
	otstype, _ := priv.otstype.LmsOtsType()
	// ToBytes() is only ever called on a valid object, so this will never return an error
	binary.BigEndian.PutUint32(u32_be[:], otstype.ToUint32())
	serialized = append(serialized, u32_be[:]...)

	// Next 4 bytes: q
	binary.BigEndian.PutUint32(u32_be[:], priv.q)
	serialized = append(serialized, u32_be[:]...)

	// Next 16 bytes: id
	serialized = append(serialized, priv.id[:]...)

	// Next M bytes: seed
	serialized = append(serialized, priv.seed[:]...)

	return serialized
}

// Retrieve the current value of the internal counter, q.
// Used for unit tests
func (priv *LmsPrivateKey) Q() uint32 {
	return priv.q
}

// LmsPrivateKeyFromBytes returns an LmsPrivateKey that represents b.
// This is the inverse of the ToBytes() method on the LmsPrivateKey object.
func LmsPrivateKeyFromBytes(b []byte) (LmsPrivateKey, error) {
	if len(b) < 8 {
		return LmsPrivateKey{}, errors.New("LmsPrivateKeyFromBytes(): Input is too short")
	}

	// The typecode is bytes 0-3 (4 bytes)
	typecode, err := common.Uint32ToLmsType(binary.BigEndian.Uint32(b[0:4])).LmsType()
	if err != nil {
		return LmsPrivateKey{}, err
	}
	// The OTS typecode is bytes 4-7 (4 bytes)
	otstype, err := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[4:8])).LmsOtsType()
	if err != nil {
		return LmsPrivateKey{}, err
	}
	lmsparams, err := typecode.LmsParams()
	if err != nil {
		return LmsPrivateKey{}, err
	}
	if len(b) < int(lmsparams.M+28) {
		return LmsPrivateKey{}, errors.New("LmsPrivateKeyFromBytes(): Input is too short")
	}

	// Internal counter is bytes 8-11 (4 bytes)
	q := binary.BigEndian.Uint32(b[8:12])
	// ID is bytes 12-27 (16 bytes)
	id := common.ID(b[12:28])
	// Seed is bytes 28+ (M bytes)
	seed_end := lmsparams.M + 28
	seed := b[28:seed_end]

	// Load private key, then set q to what was persisted
	privateKey, err := NewPrivateKeyFromSeed(typecode, otstype, id, seed)
	if err != nil {
		return LmsPrivateKey{}, err
	}
	privateKey.q = q
	return privateKey, nil
}
