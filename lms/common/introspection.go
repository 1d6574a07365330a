package common

// This file exposes read-only accessors over an algorithm type's
// parameters, for callers building tooling around this library (size
// estimation, capacity planning) rather than actually signing or
// verifying anything. Grounded on original_source's LmotsParameter/
// LmsParameter accessor traits (get_n, get_w, get_p, ...), expressed
// here as free functions over the exported interfaces rather than
// additional interface methods, since LmsOtsAlgorithmType/
// LmsAlgorithmType are deliberately kept minimal.

// HashOutputSize returns the number of bytes one hash invocation
// produces under t's configured variant (RFC 8554's "n").
func HashOutputSize(t LmsOtsAlgorithmType) (uint64, error) {
	p, err := t.Params()
	if err != nil {
		return 0, err
	}
	return p.N, nil
}

// WinternitzWidth returns the number of bits per Winternitz coefficient
// under t (RFC 8554's "w": 1, 2, 4, or 8).
func WinternitzWidth(t LmsOtsAlgorithmType) (uint8, error) {
	p, err := t.Params()
	if err != nil {
		return 0, err
	}
	switch p.W.Window() {
	case WINDOW_W1:
		return 1, nil
	case WINDOW_W2:
		return 2, nil
	case WINDOW_W4:
		return 4, nil
	default:
		return 8, nil
	}
}

// HashChainCount returns the number of N-byte hash chains an LM-OTS
// signature under t is made of (RFC 8554's "p").
func HashChainCount(t LmsOtsAlgorithmType) (uint64, error) {
	p, err := t.Params()
	if err != nil {
		return 0, err
	}
	return p.P, nil
}

// SignatureLength returns the exact serialized byte length of an
// LM-OTS signature under t.
func SignatureLength(t LmsOtsAlgorithmType) (uint64, error) {
	p, err := t.Params()
	if err != nil {
		return 0, err
	}
	return p.SIG_LEN, nil
}

// TreeHeight returns the Merkle tree height (RFC 8554's "h") under t,
// i.e. log2 of the number of leaves (one-time keys) the tree holds.
func TreeHeight(t LmsAlgorithmType) (uint64, error) {
	p, err := t.LmsParams()
	if err != nil {
		return 0, err
	}
	return p.H, nil
}

// NodeByteLength returns the byte length of one Merkle tree node (RFC
// 8554's "m") under t.
func NodeByteLength(t LmsAlgorithmType) (uint64, error) {
	p, err := t.LmsParams()
	if err != nil {
		return 0, err
	}
	return p.M, nil
}

// LeafCount returns the number of one-time keys (2^h) a tree under t
// can sign before exhaustion.
func LeafCount(t LmsAlgorithmType) (uint64, error) {
	h, err := TreeHeight(t)
	if err != nil {
		return 0, err
	}
	return uint64(1) << h, nil
}
