package hss

import (
	"encoding/binary"

	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/lms/lms"
)

// signedPublicKey is one link of an HSS signature chain: the signature
// a level made over the public key of the level below it, paired with
// that public key.
type signedPublicKey struct {
	sig lms.LmsSignature
	pub lms.LmsPublicKey
}

// signature is the serialized form described in RFC 8554 §6.3:
// Nspk, followed by Nspk (signature, public key) pairs for every level
// but the last, followed by the final level's signature over the
// caller's message.
type signature struct {
	chain []signedPublicKey
	final lms.LmsSignature
}

func (s *signature) toBytes() ([]byte, error) {
	var out []byte
	var u32 [4]byte

	binary.BigEndian.PutUint32(u32[:], uint32(len(s.chain)))
	out = append(out, u32[:]...)

	for _, link := range s.chain {
		sigBytes, err := link.sig.ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, sigBytes...)
		out = append(out, link.pub.ToBytes()...)
	}

	finalBytes, err := s.final.ToBytes()
	if err != nil {
		return nil, err
	}
	out = append(out, finalBytes...)
	return out, nil
}

// signatureFromBytes parses an HSS signature. Every chain entry and the
// final signature carry their own LMS/LM-OTS typecodes, so their
// lengths (and therefore the whole signature's structure) are
// self-describing: no external parameter list is needed to parse one,
// only to decide whether the level count it claims is the expected one.
func signatureFromBytes(b []byte) (signature, error) {
	if len(b) < 4 {
		return signature{}, errs.New(errs.Parse, "HSS signature too short")
	}
	nspk := binary.BigEndian.Uint32(b[0:4])

	off := 4
	chain := make([]signedPublicKey, nspk)
	for i := uint32(0); i < nspk; i++ {
		sigLen, err := peekLmsSigLen(b[off:])
		if err != nil {
			return signature{}, err
		}
		sig, err := lms.LmsSignatureFromBytes(b[off : off+sigLen])
		if err != nil {
			return signature{}, errs.Wrap(errs.Parse, "malformed HSS signature chain entry", err)
		}
		off += sigLen

		pubLen, err := peekLmsPubLen(b[off:])
		if err != nil {
			return signature{}, err
		}
		pub, err := lms.LmsPublicKeyFromBytes(b[off : off+pubLen])
		if err != nil {
			return signature{}, errs.Wrap(errs.Parse, "malformed HSS signature chain public key", err)
		}
		off += pubLen

		chain[i] = signedPublicKey{sig: sig, pub: pub}
	}

	finalLen, err := peekLmsSigLen(b[off:])
	if err != nil {
		return signature{}, err
	}
	if off+finalLen != len(b) {
		return signature{}, errs.New(errs.Parse, "HSS signature has trailing or missing bytes")
	}
	final, err := lms.LmsSignatureFromBytes(b[off : off+finalLen])
	if err != nil {
		return signature{}, errs.Wrap(errs.Parse, "malformed HSS final signature", err)
	}

	return signature{chain: chain, final: final}, nil
}

// lmsTypeAt and lmotsTypeAt decode and validate a big-endian typecode
// at the front of b, returning it as the package's exported algorithm
// interfaces so callers outside common never need to name the
// unexported concrete typecode types.
func lmsTypeAt(b []byte) (common.LmsAlgorithmType, error) {
	tc := common.Uint32ToLmsType(binary.BigEndian.Uint32(b))
	if _, err := tc.LmsType(); err != nil {
		return nil, errs.Wrap(errs.Parse, "invalid LMS typecode", err)
	}
	return tc, nil
}

func lmotsTypeAt(b []byte) (common.LmsOtsAlgorithmType, error) {
	tc := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b))
	if _, err := tc.LmsOtsType(); err != nil {
		return nil, errs.Wrap(errs.Parse, "invalid LM-OTS typecode", err)
	}
	return tc, nil
}

// peekLmsSigLen reads enough of an LMS signature's header (its embedded
// LM-OTS and LMS typecodes) to compute its total serialized length
// without fully parsing it, so a caller can slice exactly that many
// bytes off the front of a longer buffer. Mirrors the length formula
// lmsTypecode.LmsSigLength applies internally.
func peekLmsSigLen(b []byte) (int, error) {
	if len(b) < 8 {
		return 0, errs.New(errs.Parse, "truncated LMS signature header")
	}
	otstc, err := lmotsTypeAt(b[4:8])
	if err != nil {
		return 0, err
	}
	otsparams, err := otstc.Params()
	if err != nil {
		return 0, err
	}
	otssiglen := otsparams.SIG_LEN
	otsigmax := 4 + otssiglen
	if uint64(len(b)) < otsigmax+4 {
		return 0, errs.New(errs.Parse, "truncated LMS signature")
	}
	lmstc, err := lmsTypeAt(b[otsigmax : otsigmax+4])
	if err != nil {
		return 0, err
	}
	lmsparams, err := lmstc.LmsParams()
	if err != nil {
		return 0, err
	}
	siglen := 4 + 4 + otssiglen + lmsparams.H*lmsparams.M
	if uint64(len(b)) < siglen {
		return 0, errs.New(errs.Parse, "truncated LMS signature")
	}
	return int(siglen), nil
}

// peekLmsPubLen computes the serialized length of an LMS public key
// starting at b, from its embedded typecode.
func peekLmsPubLen(b []byte) (int, error) {
	if len(b) < 4 {
		return 0, errs.New(errs.Parse, "truncated LMS public key header")
	}
	lmstc, err := lmsTypeAt(b[0:4])
	if err != nil {
		return 0, err
	}
	params, err := lmstc.LmsParams()
	if err != nil {
		return 0, err
	}
	return int(24 + params.M), nil
}
