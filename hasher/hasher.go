// Package hasher implements the streaming hash capability shared by the
// LM-OTS, LMS and HSS layers.
//
// RFC 8554 and its SHAKE256 extension (draft-fluhrer-lms-more-parm-sets)
// only ever need four operations from the underlying primitive: write
// bytes in, read the digest out, read the digest out and rewind, and
// report the configured output size. Hasher captures exactly that
// surface so LM-OTS/LMS code never has to know whether it is chained
// to SHA-256 or SHAKE256.
package hasher

import "hash"

// Hasher is a streaming hash function with a fixed digest size, bound at
// construction time. It never errors; Write is total.
type Hasher interface {
	hash.Hash

	// FinalizeReset returns the digest, exactly like Sum(nil), and resets
	// the internal state so the instance can be reused for the next chain
	// step. Avoids an allocation per re-use of a hasher in a hot loop.
	FinalizeReset() []byte

	// Chain writes b and returns the receiver, for fluent composition:
	//   h.Chain(id[:]).Chain(be32[:]).Chain(tag[:])
	Chain(b []byte) Hasher
}

// Provider constructs fresh Hasher instances for one hash variant. LMS
// and LM-OTS parameter sets each carry a Provider rather than a concrete
// hash.Hash so that the same tree code works against SHA-256 or SHAKE256.
type Provider interface {
	// New returns a Hasher producing OutputSize() bytes of digest.
	New() Hasher
	// OutputSize is the number of bytes New().Sum(nil) will return.
	OutputSize() int
	// Name identifies the variant for logging and error messages.
	Name() string
}
