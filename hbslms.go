// Package hbslms implements stateful hash-based signatures per RFC 8554:
// LM-OTS one-time signatures composed into LMS Merkle trees, composed
// in turn into HSS signature chains of (practically) unbounded
// lifetime. It also implements the Single Subtree (SST) extension for
// jointly computing one HSS key pair among several signing entities,
// and an optional fast-verify mode that trades signer time for
// verifier time.
//
// The library holds no state between calls: a private key lives
// entirely in the caller-owned bytes passed to Sign, and Sign reports
// the bytes to persist next via the update callback. Nothing here does
// file I/O, locking, or persistence — that is the caller's job.
package hbslms

import (
	"github.com/rs/zerolog"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/hss"
	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/sst"
)

// log is silent by default, matching a library that doesn't assume its
// caller wants console output. SetLogger lets the embedding application
// opt into structured logs for key generation (and its failure) and
// for key exhaustion reported by Sign. Aux cache rebuilds and
// subordinate subtree rotation are not logged.
var log = zerolog.Nop()

// SetLogger replaces the package logger. Passing zerolog.Nop() (the
// default) silences logging entirely.
func SetLogger(l zerolog.Logger) {
	log = l
}

// Parameter is one level of an HSS parameter list, top level first.
type Parameter = hss.Parameter

// Options tunes optional behavior shared by Keygen, Sign, SignMut and
// the SST key functions. The zero value uses no auxiliary cache.
type Options struct {
	// Aux, if non-nil, is consulted and opportunistically populated for
	// the top-level tree's authentication path nodes closest to the
	// root, amortizing repeated signing under the same key.
	Aux *auxcache.Cache
}

// Keygen generates a fresh HSS key pair for params (top level first),
// drawing its master seed from crypto/rand.
func Keygen(params []Parameter, opts Options) (pkBytes []byte, skBytes []byte, err error) {
	log.Debug().Int("levels", len(params)).Msg("generating HSS key pair")
	pk, sk, err := hss.Keygen(params, opts.Aux)
	if err != nil {
		log.Error().Err(err).Msg("HSS key generation failed")
		return nil, nil, err
	}
	return pk, sk, nil
}

// Sign produces an HSS signature over msg under the private key
// serialized in skBytes. update is called with the new private key
// bytes before Sign returns; the caller is responsible for persisting
// them before acting on the signature, so a crash between signing and
// persisting never leaves a leaf re-signable.
func Sign(msg []byte, skBytes []byte, update func([]byte) error, opts Options) ([]byte, error) {
	sig, err := hss.Sign(msg, skBytes, update, opts.Aux)
	if err != nil {
		if kind, ok := errs.KindOf(err); ok && kind == errs.Exhausted {
			log.Warn().Msg("HSS private key exhausted")
		}
		return nil, err
	}
	return sig, nil
}

// SignMut is Sign's fast-verify variant: it searches LM-OTS randomizers
// for the one that will cost a verifier the least work, overwriting
// msgBuf's trailing nonce bytes in place with the winning choice, and
// reports how many Winternitz hash-chain steps the signer spent to
// find it.
func SignMut(msgBuf []byte, skBytes []byte, update func([]byte) error, opts Options) ([]byte, uint64, error) {
	return hss.SignMut(msgBuf, skBytes, update, opts.Aux)
}

// Verify reports whether sigBytes is a valid HSS signature over msg
// under the public key pkBytes.
func Verify(msg []byte, sigBytes []byte, pkBytes []byte) bool {
	return hss.Verify(msg, sigBytes, pkBytes)
}

// Lifetime returns how many messages skBytes can still sign.
func Lifetime(skBytes []byte) (uint64, error) {
	return hss.Lifetime(skBytes)
}

// SSTExtension identifies one signing entity's place in a jointly
// computed HSS tree shared among 2^TopDivHeight parties.
type SSTExtension = common.SstExtension

// SSTGenKey1 is phase one of a joint SST key pair: each signing entity
// calls this with the shared master seed and its own extension,
// producing its reference private key and the hash value of the
// Merkle node rooting its disjoint leaf range.
func SSTGenKey1(params []Parameter, seed []byte, ext SSTExtension, opts Options) (skBytes []byte, nodeValue []byte, err error) {
	return sst.GenKey1(params, seed, ext, opts.Aux)
}

// SSTGenKey2 is phase two: given one entity's reference private key and
// every signing entity's node value from SSTGenKey1, it recombines them
// into the joint public key every entity ends up with.
func SSTGenKey2(skBytes []byte, nodeValues [][]byte, opts Options) (pkBytes []byte, err error) {
	return sst.GenKey2(skBytes, nodeValues, opts.Aux)
}

// SSTNumSigningEntities reports how many parties share the tree skBytes
// is one SST entity's slice of.
func SSTNumSigningEntities(skBytes []byte) (uint32, error) {
	return sst.NumSigningEntities(skBytes)
}

// NewAuxCache loads and validates a caller-owned aux cache buffer
// against masterSeed, for passing as Options.Aux. A freshly-allocated,
// zeroed buf is valid to load: it starts out empty and self-heals as
// Keygen/Sign populate it.
func NewAuxCache(buf []byte, nodeSize int, masterSeed []byte) (*auxcache.Cache, error) {
	return auxcache.Load(buf, nodeSize, masterSeed)
}
