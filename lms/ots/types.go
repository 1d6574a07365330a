package ots

import (
	"github.com/hbslms/hbslms/lms/common"
)

// A LmsOtsPrivateKey is used to sign exactly one message.
type LmsOtsPrivateKey struct {
	typecode common.LmsOtsAlgorithmType
	q        uint32
	id       common.ID
	x        [][]byte
	valid    bool
}

// A LmsOtsPublicKey is used to verify exactly one message.
type LmsOtsPublicKey struct {
	typecode common.LmsOtsAlgorithmType
	q        uint32
	id       common.ID
	k        []byte
}

// A LmsOtsSignature is a signature of one message.
type LmsOtsSignature struct {
	typecode common.LmsOtsAlgorithmType
	c        []byte
	y        [][]byte
}

// Typecode returns the LM-OTS algorithm this signature claims to have
// been produced with. Callers composing LM-OTS into a larger scheme
// (LMS, HSS) use this to check the claim against the type their public
// key actually expects, before trusting RecoverPublicKey's output.
func (sig *LmsOtsSignature) Typecode() common.LmsOtsAlgorithmType {
	return sig.typecode
}
