// Package sst implements the Single Subtree (SST) extension: splitting
// one HSS top-level tree's leaves into disjoint ranges owned by
// separate signing entities, so a ceremony of N parties can produce one
// joint key pair without any party ever computing another's leaves.
//
// GenKey1 runs once per signing entity, producing that entity's
// reference private key and the hash value of the Merkle node rooting
// its leaf range. Those N node values are then exchanged out of band
// (this library does no networking) and every entity calls GenKey2
// with the full set to arrive at the same joint public key.
package sst

import (
	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/hss"
	"github.com/hbslms/hbslms/lms/common"
)

// GenKey1 is phase one of a joint SST key pair: see hss.KeygenSST.
func GenKey1(params []hss.Parameter, seed []byte, ext common.SstExtension, aux *auxcache.Cache) (skBytes []byte, nodeValue []byte, err error) {
	return hss.KeygenSST(params, seed, ext, aux)
}

// GenKey2 is phase two of a joint SST key pair: see hss.JoinSST.
func GenKey2(skBytes []byte, nodeValues [][]byte, aux *auxcache.Cache) (pkBytes []byte, err error) {
	return hss.JoinSST(skBytes, nodeValues, aux)
}

// NumSigningEntities reports how many parties share the tree skBytes is
// one SST entity's slice of.
func NumSigningEntities(skBytes []byte) (uint32, error) {
	return hss.NumSigningEntitiesSST(skBytes)
}
