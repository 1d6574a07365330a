// Package lms implements Leighton-Micali Hash-Based Signatures (RFC 8554)
//
// This file computes Merkle tree node values on demand, consulting an
// optional auxiliary data cache for the nodes closest to the root
// instead of materializing the full 2^(H+1)-1 node array up front. At
// H=25 that array would be gigabytes; computing each node lazily from
// (id, seed) keeps memory bounded to O(H) at the cost of recomputing
// uncached subtrees on every call; the aux cache serves the nodes in
// its root-anchored prefix directly, so only subtrees below that
// prefix are recomputed.
package lms

import (
	"encoding/binary"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/lms/ots"
)

// treeElement returns the value of node r (1-indexed, root = 1) of the
// Merkle tree over `leaves` LM-OTS public keys derived from (id, seed).
// If aux is non-nil, any node within its cached prefix is read from or
// written into it directly instead of being recursed into.
func treeElement(otstc common.LmsOtsAlgorithmType, id common.ID, seed []byte, r uint32, leaves uint32, aux *auxcache.Cache) ([]byte, error) {
	if v, ok := aux.Get(r); ok {
		return v, nil
	}

	ots_params, err := otstc.Params()
	if err != nil {
		return nil, err
	}

	var value []byte
	if r >= leaves {
		ots_priv, err := ots.NewPrivateKeyFromSeed(otstc, r-leaves, id, seed)
		if err != nil {
			return nil, err
		}
		ots_pub, err := ots_priv.Public()
		if err != nil {
			return nil, err
		}

		var r_be [4]byte
		binary.BigEndian.PutUint32(r_be[:], r)

		h := ots_params.H.New()
		common.HashWrite(h, id[:])
		common.HashWrite(h, r_be[:])
		common.HashWrite(h, common.D_LEAF[:])
		common.HashWrite(h, ots_pub.Key())
		value = common.HashSum(h, ots_params.N)
	} else {
		left, err := treeElement(otstc, id, seed, 2*r, leaves, aux)
		if err != nil {
			return nil, err
		}
		right, err := treeElement(otstc, id, seed, 2*r+1, leaves, aux)
		if err != nil {
			return nil, err
		}

		var r_be [4]byte
		binary.BigEndian.PutUint32(r_be[:], r)

		h := ots_params.H.New()
		common.HashWrite(h, id[:])
		common.HashWrite(h, r_be[:])
		common.HashWrite(h, common.D_INTR[:])
		common.HashWrite(h, left)
		common.HashWrite(h, right)
		value = common.HashSum(h, ots_params.N)
	}

	if aux.InRange(r) {
		aux.Put(r, value)
	}
	return value, nil
}

// authPath returns the H sibling node values on leaf q's path to the
// root, ordered from the leaf's immediate sibling (index 0) up to the
// child of the root (index H-1) — the order RFC 8554 Algorithm 5 uses
// for the authentication path.
func authPath(otstc common.LmsOtsAlgorithmType, id common.ID, seed []byte, q uint32, height int, aux *auxcache.Cache) ([][]byte, error) {
	leaves := uint32(1) << uint(height)
	path := make([][]byte, height)
	r := leaves + q
	for i := 0; i < height; i++ {
		sibling := r ^ 1
		v, err := treeElement(otstc, id, seed, sibling, leaves, aux)
		if err != nil {
			return nil, err
		}
		path[i] = v
		r >>= 1
	}
	return path, nil
}
