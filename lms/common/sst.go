package common

// SstExtension records a Single Subtree (SST) private key's place in a
// jointly-computed LMS/HSS tree: this signing entity owns leaves
// `[SigningEntityIdx * 2^(h-TopDivHeight), (SigningEntityIdx+1) * 2^(h-TopDivHeight))`
// of a tree split at depth TopDivHeight among `2^TopDivHeight` parties,
// and no entity ever computes another's leaves.
type SstExtension struct {
	SigningEntityIdx uint32
	TopDivHeight     uint8
}

// LeafRange returns this entity's half-open range of leaf indices
// within a tree of the given height.
func (e *SstExtension) LeafRange(height uint64) (start, end uint32) {
	span := uint32(1) << (height - uint64(e.TopDivHeight))
	start = e.SigningEntityIdx * span
	end = start + span
	return
}

// NumSigningEntities returns the number of parties a tree split at
// TopDivHeight is shared among.
func (e *SstExtension) NumSigningEntities() uint32 {
	return uint32(1) << e.TopDivHeight
}
