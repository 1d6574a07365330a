package hss

import (
	"encoding/binary"
	"math/bits"

	"github.com/hbslms/hbslms/auxcache"
	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
	"github.com/hbslms/hbslms/lms/lms"
)

// subtreeNodeIndex returns the index, within the top-level tree's full
// node numbering, of the Merkle node rooting signing entity idx's
// disjoint leaf range when the tree is split at depth topDivHeight
// among 2^topDivHeight entities.
func subtreeNodeIndex(idx uint32, topDivHeight uint8) uint32 {
	return (uint32(1) << topDivHeight) + idx
}

// KeygenSST is the first phase of a jointly-computed HSS key pair
// shared among 2^sstExt.TopDivHeight signing entities: every entity
// derives the same top-level (id, seed) from the shared master seed,
// computes only the hash value of the Merkle node rooting its own
// disjoint leaf range, and returns that alongside its reference
// private key. No entity ever computes another entity's leaves.
func KeygenSST(params []Parameter, seed []byte, sstExt common.SstExtension, aux *auxcache.Cache) (skBytes []byte, nodeValue []byte, err error) {
	if len(params) == 0 || len(params) > int(common.MAX_HSS_LEVELS) {
		return nil, nil, errs.New(errs.ParamMismatch, "HSS parameter list must have between 1 and MAX_HSS_LEVELS levels")
	}
	hs, err := heights(params)
	if err != nil {
		return nil, nil, err
	}
	if uint64(sstExt.TopDivHeight) > hs[0] {
		return nil, nil, errs.New(errs.ParamMismatch, "SST top_div_height exceeds the top-level tree height")
	}
	if uint64(len(seed)) != common.SEED_LEN {
		return nil, nil, errs.New(errs.ParamMismatch, "master seed has the wrong length")
	}

	id, derivedSeed := rootIdentity(seed)
	leafStart, leafEnd := sstExt.LeafRange(hs[0])
	priv, err := lms.NewSstPrivateKey(params[0].Lms, params[0].Ots, id, derivedSeed, leafStart, leafEnd)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ParamMismatch, "failed to derive SST signing entity private key", err)
	}

	nodeIdx := subtreeNodeIndex(sstExt.SigningEntityIdx, sstExt.TopDivHeight)
	value, err := priv.TreeNode(nodeIdx, aux)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ParamMismatch, "failed to compute SST subtree node", err)
	}

	// The entity's starting point in the global mixed-radix leaf
	// counter has its own leaf range at the most significant position
	// (the top level) and every subordinate level fresh at zero.
	idx := make([]uint32, len(hs))
	idx[0] = leafStart
	q := joinQ(idx, hs)

	rk := referenceKey{q: q, params: params, seed: seed, sst: &sstExt}
	return rk.toBytes(), value, nil
}

// NumSigningEntitiesSST reports how many parties share the tree skBytes
// is one SST entity's slice of.
func NumSigningEntitiesSST(skBytes []byte) (uint32, error) {
	rk, err := parseReferenceKey(skBytes)
	if err != nil {
		return 0, err
	}
	if rk.sst == nil {
		return 0, errs.New(errs.ParamMismatch, "reference private key has no SST extension")
	}
	return rk.sst.NumSigningEntities(), nil
}

// JoinSST is the second phase of a jointly-computed HSS key pair: given
// one entity's reference private key and every signing entity's
// subtree node value (from KeygenSST), ordered by signing entity
// index, it recombines them into the shared HSS public key.
func JoinSST(skBytes []byte, nodeValues [][]byte, aux *auxcache.Cache) (pkBytes []byte, err error) {
	rk, err := parseReferenceKey(skBytes)
	if err != nil {
		return nil, err
	}
	if rk.sst == nil {
		return nil, errs.New(errs.ParamMismatch, "reference private key has no SST extension")
	}
	if uint32(len(nodeValues)) != rk.sst.NumSigningEntities() {
		return nil, errs.New(errs.ParamMismatch, "wrong number of SST intermediate node values")
	}

	id, _ := rootIdentity(rk.seed)
	root, err := combineSstNodes(id, rk.params[0].Ots, 1, rk.sst.TopDivHeight, nodeValues)
	if err != nil {
		return nil, err
	}

	top, err := lms.NewPublicKey(rk.params[0].Lms, rk.params[0].Ots, id, root)
	if err != nil {
		return nil, errs.Wrap(errs.ParamMismatch, "failed to assemble joint SST public key", err)
	}

	pk := publicKey{levels: uint32(len(rk.params)), top: top}
	return pk.toBytes(), nil
}

// combineSstNodes recomputes the Merkle node at index, given every leaf
// node value at depth topDivHeight, ordered by signing entity index.
func combineSstNodes(id common.ID, otstc common.LmsOtsAlgorithmType, index uint32, topDivHeight uint8, nodeValues [][]byte) ([]byte, error) {
	level := uint8(bits.Len32(index) - 1)
	if level == topDivHeight {
		leafNumber := index - (uint32(1) << topDivHeight)
		if int(leafNumber) >= len(nodeValues) {
			return nil, errs.New(errs.ParamMismatch, "missing SST intermediate node value")
		}
		return nodeValues[leafNumber], nil
	}

	left, err := combineSstNodes(id, otstc, index*2, topDivHeight, nodeValues)
	if err != nil {
		return nil, err
	}
	right, err := combineSstNodes(id, otstc, index*2+1, topDivHeight, nodeValues)
	if err != nil {
		return nil, err
	}

	otsparams, err := otstc.Params()
	if err != nil {
		return nil, err
	}
	var idxBE [4]byte
	binary.BigEndian.PutUint32(idxBE[:], index)

	h := otsparams.H.New()
	common.HashWrite(h, id[:])
	common.HashWrite(h, idxBE[:])
	common.HashWrite(h, common.D_INTR[:])
	common.HashWrite(h, left)
	common.HashWrite(h, right)
	return common.HashSum(h, otsparams.N), nil
}
