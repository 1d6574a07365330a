package hss

import "github.com/hbslms/hbslms/hasher"

// sha256Sum concatenates parts and returns their SHA-256 digest, using
// the package's own Hasher abstraction rather than reaching for
// crypto/sha256 directly, so every hash call in this module flows
// through the same provider seam.
func sha256Sum(parts ...[]byte) []byte {
	h := hasher.SHA256Provider{}.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.FinalizeReset()
}
