package hasher

import (
	"golang.org/x/crypto/sha3"
)

// SHAKE256Provider yields Hasher instances backed by the SHAKE256
// extendable-output function, squeezed down to a fixed size. RFC 8554
// itself only defines the SHA-256 type codes; the SHAKE256 type codes
// implemented here follow the same parameterization scheme from the
// follow-on LMS/LM-OTS parameter-set draft, which the reference Rust
// implementation this package is grounded on also carries.
type SHAKE256Provider struct {
	// Size is the number of bytes squeezed out of the sponge per digest.
	// RFC-registered SHAKE256 LMS/LM-OTS type codes use 24 or 32.
	Size int
}

func (p SHAKE256Provider) New() Hasher     { return &shakeHash{size: p.Size, x: sha3.NewShake256()} }
func (p SHAKE256Provider) OutputSize() int { return p.Size }
func (p SHAKE256Provider) Name() string    { return "SHAKE256" }

// shakeHash adapts the sponge's Write/Read squeeze interface to Hasher's
// Write/Sum shape, fixing the squeeze length at construction.
type shakeHash struct {
	size int
	x    sha3.ShakeHash
}

func (s *shakeHash) Write(p []byte) (int, error) { return s.x.Write(p) }

func (s *shakeHash) Sum(b []byte) []byte {
	clone := s.x.Clone()
	out := make([]byte, s.size)
	if _, err := clone.Read(out); err != nil {
		panic("hasher: shake squeeze never errors")
	}
	return append(b, out...)
}

func (s *shakeHash) Reset() { s.x.Reset() }
func (s *shakeHash) Size() int { return s.size }
func (s *shakeHash) BlockSize() int { return 136 } // SHAKE256 sponge rate in bytes

func (s *shakeHash) FinalizeReset() []byte {
	out := make([]byte, s.size)
	if _, err := s.x.Read(out); err != nil {
		panic("hasher: shake squeeze never errors")
	}
	s.x.Reset()
	return out
}

func (s *shakeHash) Chain(b []byte) Hasher {
	if _, err := s.x.Write(b); err != nil {
		panic("hasher: Write never errors")
	}
	return s
}
