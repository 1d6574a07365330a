package lms

import (
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/lms/ots"
)

// A LmsPrivateKey is used to sign a finite number of messages
type LmsPrivateKey struct {
	typecode common.LmsAlgorithmType
	otstype  common.LmsOtsAlgorithmType
	q        uint32
	id       common.ID
	seed     []byte

	// sstRangeEnd is nonzero for a Single Subtree private key,
	// restricting q to the half-open range [leafStart, sstRangeEnd)
	// assigned to one signing entity. Zero means "no restriction".
	sstRangeEnd uint32
}

// A LmsPublicKey is used to verify messages signed by a LmsPrivateKey
type LmsPublicKey struct {
	typecode common.LmsAlgorithmType
	otstype  common.LmsOtsAlgorithmType
	id       common.ID
	k        []byte
}

// A LmsSignature represents a signature produced by an LmsPrivateKey
// which an LmsPublicKey can validate for a given message
type LmsSignature struct {
	typecode common.LmsAlgorithmType
	q        uint32
	ots      ots.LmsOtsSignature
	path     [][]byte
}
