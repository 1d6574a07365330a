package hasher

import (
	"crypto/sha256"
	"hash"
)

// SHA256Provider yields 32-byte SHA-256 Hasher instances. This is the
// variant required by every LMS_SHA256_* / LMOTS_SHA256_* type code in
// RFC 8554.
type SHA256Provider struct{}

func (SHA256Provider) New() Hasher      { return &wrappedHash{h: sha256.New()} }
func (SHA256Provider) OutputSize() int  { return sha256.Size }
func (SHA256Provider) Name() string     { return "SHA-256" }

// wrappedHash adapts any fixed-output hash.Hash (no Reset-and-resize
// needed) to the Hasher interface.
type wrappedHash struct {
	h hash.Hash
}

func (w *wrappedHash) Write(p []byte) (int, error) { return w.h.Write(p) }
func (w *wrappedHash) Sum(b []byte) []byte          { return w.h.Sum(b) }
func (w *wrappedHash) Reset()                       { w.h.Reset() }
func (w *wrappedHash) Size() int                    { return w.h.Size() }
func (w *wrappedHash) BlockSize() int                { return w.h.BlockSize() }

func (w *wrappedHash) FinalizeReset() []byte {
	d := w.h.Sum(nil)
	w.h.Reset()
	return d
}

func (w *wrappedHash) Chain(b []byte) Hasher {
	hashWrite(w, b)
	return w
}

// hashWrite wraps h.Write with a panic: per the streaming Hasher
// contract, Write never errors.
func hashWrite(h hash.Hash, b []byte) {
	if _, err := h.Write(b); err != nil {
		panic("hasher: Write never errors")
	}
}
