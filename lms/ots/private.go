// Package ots implements one-time signatures (LM-OTS) for use in LMS
//
// This file implements the private key and signing logic.
package ots

import (
	"github.com/hbslms/hbslms/lms/common"

	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
)

// NewPrivateKey returns a LmsOtsPrivateKey, seeded by a cryptographically secure
// random number generator.
func NewPrivateKey(tc common.LmsOtsAlgorithmType, q uint32, id common.ID) (LmsOtsPrivateKey, error) {
	params, err := tc.Params()
	if err != nil {
		return LmsOtsPrivateKey{}, err
	}

	seed := make([]byte, params.N)
	_, err = rand.Read(seed)
	if err != nil {
		return LmsOtsPrivateKey{}, err
	}

	return NewPrivateKeyFromSeed(tc, q, id, seed)
}

// NewPrivateKeyFromSeed returns a new LmsOtsPrivateKey, using the algorithm from
// Appendix A of <https://datatracker.ietf.org/doc/html/rfc8554#appendix-A>
func NewPrivateKeyFromSeed(tc common.LmsOtsAlgorithmType, q uint32, id common.ID, seed []byte) (LmsOtsPrivateKey, error) {
	params, err := tc.Params()
	if err != nil {
		return LmsOtsPrivateKey{}, err
	}
	x := make([][]byte, params.P)

	for i := uint64(0); i < params.P; i++ {
		var q_be [4]byte
		var i_be [2]byte
		h := params.H.New()

		binary.BigEndian.PutUint32(q_be[:], q)
		binary.BigEndian.PutUint16(i_be[:], uint16(i))

		common.HashWrite(h, id[:])
		common.HashWrite(h, q_be[:])
		common.HashWrite(h, i_be[:])
		common.HashWrite(h, []byte{0xff})
		common.HashWrite(h, seed)

		x[i] = h.Sum(nil)
	}

	return LmsOtsPrivateKey{
		typecode: tc,
		q:        q,
		id:       id,
		x:        x,
		valid:    true,
	}, nil
}

// Public returns an LmsOtsPublicKey that validates signatures for this private key.
func (x *LmsOtsPrivateKey) Public() (LmsOtsPublicKey, error) {
	var be16 [2]byte
	var be32 [4]byte
	var tmp []byte
	params, err := x.typecode.Params()
	if err != nil {
		return LmsOtsPublicKey{}, err
	}
	h := params.H.New()
	binary.BigEndian.PutUint32(be32[:], x.q)

	common.HashWrite(h, x.id[:])
	common.HashWrite(h, be32[:])
	common.HashWrite(h, common.D_PBLC[:])

	for i := uint64(0); i < params.P; i++ {
		tmp = make([]byte, len(x.x[i]))
		copy(tmp, x.x[i])

		for j := uint64(0); j < (uint64(1)<<int(params.W.Window()))-1; j++ {
			inner := params.H.New()

			binary.BigEndian.PutUint32(be32[:], x.q)
			binary.BigEndian.PutUint16(be16[:], uint16(i))

			common.HashWrite(inner, x.id[:])
			common.HashWrite(inner, be32[:])
			common.HashWrite(inner, be16[:])
			common.HashWrite(inner, []byte{byte(j)})
			common.HashWrite(inner, tmp)

			tmp = inner.Sum(nil)
		}

		common.HashWrite(h, tmp)
	}

	return LmsOtsPublicKey{
		typecode: x.typecode,
		q:        x.q,
		id:       x.id,
		k:        h.Sum(nil),
	}, nil
}

// Sign calculates the LM-OTS signature of a chosen message, drawing its
// randomizer C from rng (crypto/rand.Reader if nil).
func (x *LmsOtsPrivateKey) Sign(msg []byte, rng io.Reader) (LmsOtsSignature, error) {
	if rng == nil {
		rng = rand.Reader
	}
	params, err := x.typecode.Params()
	if err != nil {
		return LmsOtsSignature{}, err
	}
	c := make([]byte, params.N)
	if _, err := rng.Read(c); err != nil {
		return LmsOtsSignature{}, err
	}
	sig, _, err := x.SignWithRandomizer(msg, c)
	return sig, err
}

// SignWithRandomizer calculates the LM-OTS signature of msg using the
// caller-supplied randomizer C, and reports how many Winternitz
// hash-chain steps were spent computing it. A deterministic (e.g.
// zero-filled) C yields reproducible signatures; this is what LMS leaf
// signing and the fast_verify search both need, for different reasons.
//
// The private key is consumed: after this call x is no longer valid for
// signing. LM-OTS keys are, by construction, usable exactly once.
func (x *LmsOtsPrivateKey) SignWithRandomizer(msg []byte, c []byte) (LmsOtsSignature, uint64, error) {
	if !x.valid {
		return LmsOtsSignature{}, 0, errors.New("SignWithRandomizer(): invalid (already used) private key")
	}

	var be16 [2]byte
	var be32 [4]byte
	params, err := x.typecode.Params()
	if err != nil {
		return LmsOtsSignature{}, 0, err
	}
	if uint64(len(c)) != params.N {
		return LmsOtsSignature{}, 0, errors.New("SignWithRandomizer(): randomizer has wrong length")
	}

	h := params.H.New()
	binary.BigEndian.PutUint32(be32[:], x.q)

	common.HashWrite(h, x.id[:])
	common.HashWrite(h, be32[:])
	common.HashWrite(h, common.D_MESG[:])
	common.HashWrite(h, c)
	common.HashWrite(h, msg)

	Q := h.Sum(nil)
	expanded, err := common.Expand(Q, x.typecode)
	if err != nil {
		return LmsOtsSignature{}, 0, err
	}

	y := make([][]byte, params.P)
	var hashIterations uint64

	for i := uint64(0); i < params.P; i++ {
		a := uint64(expanded[i])
		y[i] = make([]byte, len(x.x[i]))
		copy(y[i], x.x[i])

		for j := uint64(0); j < a; j++ {
			inner := params.H.New()

			binary.BigEndian.PutUint32(be32[:], x.q)
			binary.BigEndian.PutUint16(be16[:], uint16(i))

			common.HashWrite(inner, x.id[:])
			common.HashWrite(inner, be32[:])
			common.HashWrite(inner, be16[:])
			common.HashWrite(inner, []byte{byte(j)})
			common.HashWrite(inner, y[i])

			y[i] = inner.Sum(nil)
			hashIterations++
		}
	}

	// The key is used exactly once: render it unusable.
	x.x = nil
	x.valid = false

	return LmsOtsSignature{
		typecode: x.typecode,
		c:        c,
		y:        y,
	}, hashIterations, nil
}
