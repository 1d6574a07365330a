package hss

import (
	"crypto/rand"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/lms"
)

// zeroReader hands out an endless run of zero bytes. Every non-leaf HSS
// level's public key is signed with this as its LM-OTS randomizer C
// instead of a fresh random one: those signatures are regenerated from
// scratch on every call (this package keeps no state between calls),
// so a random C there would make the bytes on the wire change every
// time the same leaf resigns the same subordinate public key, even
// though nothing about the signed data changed. The leaf level, which
// signs the caller's actual message, still draws C from crypto/rand.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// expandedKey is a fully rederived HSS private key: one lms.LmsPrivateKey
// per level, each pinned to the single leaf index this Keygen/Sign call
// needs, plus that level's public key.
type expandedKey struct {
	levels []expandedLevel
	params []Parameter
	q      uint64
	limit  uint64
}

// expand parses a reference private key and rebuilds every level's tree
// state from the master seed, pinning each level's private key to the
// one leaf index the current value of q selects at that level.
func expand(rk referenceKey, aux *auxcache.Cache) (*expandedKey, error) {
	hs, err := heights(rk.params)
	if err != nil {
		return nil, err
	}
	total, err := totalHeight(hs)
	if err != nil {
		return nil, err
	}
	limit := uint64(1) << total
	if rk.q >= limit {
		return nil, errs.New(errs.Exhausted, "HSS private key has signed its last available message")
	}

	idx := splitQ(rk.q, hs)

	var topLeafEnd uint32
	if rk.sst != nil {
		leafStart, leafEnd := rk.sst.LeafRange(hs[0])
		if idx[0] < leafStart || idx[0] >= leafEnd {
			return nil, errs.New(errs.Exhausted, "SST signing entity has used its entire assigned leaf range")
		}
		topLeafEnd = leafEnd
	}

	levels := make([]expandedLevel, len(rk.params))
	id, seed := rootIdentity(rk.seed)
	for i, p := range rk.params {
		leafEnd := idx[i] + 1
		if i == 0 && rk.sst != nil {
			leafEnd = topLeafEnd
		}
		priv, err := lms.NewSstPrivateKey(p.Lms, p.Ots, id, seed, idx[i], leafEnd)
		if err != nil {
			return nil, errs.Wrap(errs.ParamMismatch, "failed to rederive HSS level private key", err)
		}

		var levelAux *auxcache.Cache
		if i == 0 {
			levelAux = aux
		}
		pub, err := priv.Public(levelAux)
		if err != nil {
			return nil, errs.Wrap(errs.ParamMismatch, "failed to rederive HSS level public key", err)
		}

		levels[i] = expandedLevel{id: id, seed: seed, priv: priv, pub: pub}

		if i+1 < len(rk.params) {
			id, seed = deriveChild(seed, id, idx[i])
		}
	}

	return &expandedKey{levels: levels, params: rk.params, q: rk.q, limit: limit}, nil
}

// chainPrefix signs every level but the last over the next level's
// public key, using a deterministic randomizer so the chain is
// reproducible across independent calls that rederive the same levels.
func (ek *expandedKey) chainPrefix() ([]signedPublicKey, error) {
	chain := make([]signedPublicKey, len(ek.levels)-1)
	for i := 0; i < len(ek.levels)-1; i++ {
		nextPubBytes := ek.levels[i+1].pub.ToBytes()
		sig, err := ek.levels[i].priv.Sign(nextPubBytes, zeroReader{}, nil)
		if err != nil {
			return nil, errs.Wrap(errs.ParamMismatch, "failed to sign HSS subordinate public key", err)
		}
		chain[i] = signedPublicKey{sig: sig, pub: ek.levels[i+1].pub}
	}
	return chain, nil
}

// Sign produces an HSS signature over msg using the private key
// serialized in skBytes, and reports the updated private key bytes to
// update before returning. aux, if non-nil, amortizes the cost of the
// top-level tree's authentication path across repeated calls.
func Sign(msg []byte, skBytes []byte, update func([]byte) error, aux *auxcache.Cache) ([]byte, error) {
	rk, err := parseReferenceKey(skBytes)
	if err != nil {
		return nil, err
	}
	ek, err := expand(rk, aux)
	if err != nil {
		return nil, err
	}
	// expand resolved the top-level root through aux, writing every
	// in-range node, so the cache can be sealed for future calls.
	aux.Seal(rk.seed)

	chain, err := ek.chainPrefix()
	if err != nil {
		return nil, err
	}

	leaf := ek.levels[len(ek.levels)-1]
	var leafAux *auxcache.Cache
	if len(ek.levels) == 1 {
		leafAux = aux
	}
	finalSig, err := leaf.priv.Sign(msg, rand.Reader, leafAux)
	if err != nil {
		return nil, errs.Wrap(errs.ParamMismatch, "failed to sign message with HSS leaf level", err)
	}

	sig := signature{chain: chain, final: finalSig}
	sigBytes, err := sig.toBytes()
	if err != nil {
		return nil, err
	}

	rk.q++
	if err := update(rk.toBytes()); err != nil {
		return nil, errs.Wrap(errs.CallbackFailure, "HSS private key state update failed", err)
	}

	return sigBytes, nil
}

// fastVerifyTrials bounds how many candidate LM-OTS randomizers SignMut
// searches before settling on the best one found. RFC 8554 gives no
// fixed trial count for this tradeoff; this is a practical ceiling on
// signer-side work for a meaningful reduction in verifier-side work.
const fastVerifyTrials = 32

// SignMut is Sign's fast-verify variant: it searches candidate LM-OTS
// randomizers for the leaf signature, keeping the one that cost the
// signer the most Winternitz hash-chain steps to produce. That is also
// the one a verifier spends the fewest steps recovering the candidate
// public key from, since signer and verifier steps for a coordinate
// always sum to the same fixed total. msgBuf's trailing bytes are
// overwritten in place with the nonce that produced the winning
// signature, so a verifier hashing the final msgBuf sees exactly the
// message that was searched over.
func SignMut(msgBuf []byte, skBytes []byte, update func([]byte) error, aux *auxcache.Cache) ([]byte, uint64, error) {
	rk, err := parseReferenceKey(skBytes)
	if err != nil {
		return nil, 0, err
	}
	otsparams, err := rk.params[len(rk.params)-1].Ots.Params()
	if err != nil {
		return nil, 0, err
	}
	tailLen := int(otsparams.N)

	if len(msgBuf) < tailLen {
		return nil, 0, errs.New(errs.FastVerifyMisuse, "fast-verify message buffer must reserve a nonce tail as long as the leaf level's hash output")
	}
	tail := msgBuf[len(msgBuf)-tailLen:]
	for _, b := range tail {
		if b != 0 {
			return nil, 0, errs.New(errs.FastVerifyMisuse, "fast-verify message buffer's reserved nonce tail must be zero on entry")
		}
	}

	ek, err := expand(rk, aux)
	if err != nil {
		return nil, 0, err
	}
	aux.Seal(rk.seed)

	chain, err := ek.chainPrefix()
	if err != nil {
		return nil, 0, err
	}

	leaf := ek.levels[len(ek.levels)-1]
	var leafAux *auxcache.Cache
	if len(ek.levels) == 1 {
		leafAux = aux
	}

	scratch := make([]byte, len(msgBuf))
	nonce := scratch[len(scratch)-tailLen:]
	copy(scratch, msgBuf)

	bestNonce := make([]byte, tailLen)
	var bestC []byte
	var bestIterations uint64
	var totalIterations uint64
	found := false

	for trial := 0; trial < fastVerifyTrials; trial++ {
		if _, err := rand.Read(nonce); err != nil {
			return nil, 0, err
		}
		c := make([]byte, otsparams.N)
		if _, err := rand.Read(c); err != nil {
			return nil, 0, err
		}
		candidateLeaf := leaf
		_, iterations, err := candidateLeaf.priv.SignWithRandomizer(scratch, c, nil)
		if err != nil {
			return nil, 0, err
		}
		totalIterations += iterations
		if !found || iterations > bestIterations {
			copy(bestNonce, nonce)
			bestC = c
			bestIterations = iterations
			found = true
		}
	}

	copy(msgBuf[len(msgBuf)-tailLen:], bestNonce)
	finalSig, _, err := leaf.priv.SignWithRandomizer(msgBuf, bestC, leafAux)
	if err != nil {
		return nil, 0, err
	}

	hssSig := signature{chain: chain, final: finalSig}
	sigBytes, err := hssSig.toBytes()
	if err != nil {
		return nil, 0, err
	}

	rk.q++
	if err := update(rk.toBytes()); err != nil {
		return nil, 0, errs.Wrap(errs.CallbackFailure, "HSS private key state update failed", err)
	}

	return sigBytes, totalIterations, nil
}
