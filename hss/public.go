package hss

import (
	"encoding/binary"

	"github.com/hbslms/hbslms/lms/lms"
)

// publicKey is the parsed form of an HSS public key: RFC 8554 §6.1's
// u32str(L) followed by the top-level LMS public key.
type publicKey struct {
	levels uint32
	top    lms.LmsPublicKey
}

func publicKeyFromBytes(b []byte) (publicKey, bool) {
	if len(b) < 4 {
		return publicKey{}, false
	}
	levels := binary.BigEndian.Uint32(b[0:4])
	if levels == 0 {
		return publicKey{}, false
	}
	top, err := lms.LmsPublicKeyFromBytes(b[4:])
	if err != nil {
		return publicKey{}, false
	}
	return publicKey{levels: levels, top: top}, true
}

func (pk *publicKey) toBytes() []byte {
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], pk.levels)
	out := append([]byte{}, u32[:]...)
	return append(out, pk.top.ToBytes()...)
}

// Verify reports whether sigBytes is a valid HSS signature over msg
// under the public key pkBytes, per RFC 8554 §6.3's recursive
// "adopt the next level's public key" verification.
func Verify(msg []byte, sigBytes []byte, pkBytes []byte) bool {
	pk, ok := publicKeyFromBytes(pkBytes)
	if !ok {
		return false
	}
	sig, err := signatureFromBytes(sigBytes)
	if err != nil {
		return false
	}
	if uint32(len(sig.chain))+1 != pk.levels {
		return false
	}

	current := pk.top
	for _, link := range sig.chain {
		if !current.Verify(link.pub.ToBytes(), link.sig) {
			return false
		}
		current = link.pub
	}

	return current.Verify(msg, sig.final)
}
