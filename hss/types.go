// Package hss implements the Hierarchical Signature System composition
// over LMS (RFC 8554 §6): a chain of LMS trees, each level signing the
// public key of the level below it, extending a single LMS tree's
// finite lifetime to the product of every level's lifetime.
//
// Every exported function here is stateless over its byte-slice
// arguments: a reference private key is parsed, its tree levels are
// rederived from the master seed, the operation runs, and (for Sign)
// the caller's update callback is invoked with the new serialized
// state. No hss.PrivateKey value survives across calls, so the
// auxiliary cache is the only thing that amortizes repeated-signing
// cost across independent calls against the same key.
package hss

import (
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/lms/lms"
)

// Parameter is one level of an HSS parameter list: an LMS tree height
// paired with the LM-OTS type its leaves use.
type Parameter struct {
	Lms common.LmsAlgorithmType
	Ots common.LmsOtsAlgorithmType
}

// expandedLevel is the in-memory state for one HSS level, rebuilt fresh
// from the master seed on every Keygen/KeygenFromSeed/Sign/SignMut call.
type expandedLevel struct {
	id   common.ID
	seed []byte
	priv lms.LmsPrivateKey
	pub  lms.LmsPublicKey
}
