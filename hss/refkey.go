package hss

import (
	"encoding/binary"

	"github.com/hbslms/hbslms/internal/errs"
	"github.com/hbslms/hbslms/lms/common"
)

// referenceKey is the parsed form of the persisted reference private
// key blob:
// [q: 8 bytes BE | L: 1 byte | L * (lms_type: 4 bytes, ots_type: 4 bytes) | seed: SEED_LEN bytes | optional SST extension: 5 bytes].
type referenceKey struct {
	q      uint64
	params []Parameter
	seed   []byte
	sst    *common.SstExtension
}

const (
	sstExtensionLen = 5 // 4-byte entity index + 1-byte top_div_height
)

func parseReferenceKey(b []byte) (referenceKey, error) {
	if len(b) < 9 {
		return referenceKey{}, errs.New(errs.Parse, "reference private key too short")
	}
	q := binary.BigEndian.Uint64(b[0:8])
	l := int(b[8])
	if l < 1 || l > int(common.MAX_HSS_LEVELS) {
		return referenceKey{}, errs.New(errs.Parse, "reference private key has an invalid level count")
	}

	headerLen := 9 + 8*l
	if len(b) < headerLen+int(common.SEED_LEN) {
		return referenceKey{}, errs.New(errs.Parse, "reference private key too short for its level count")
	}

	params := make([]Parameter, l)
	for i := 0; i < l; i++ {
		off := 9 + 8*i
		lmsType := common.Uint32ToLmsType(binary.BigEndian.Uint32(b[off : off+4]))
		otsType := common.Uint32ToLmotsType(binary.BigEndian.Uint32(b[off+4 : off+8]))
		if _, err := lmsType.LmsType(); err != nil {
			return referenceKey{}, errs.Wrap(errs.Parse, "invalid LMS type in reference private key", err)
		}
		if _, err := otsType.LmsOtsType(); err != nil {
			return referenceKey{}, errs.Wrap(errs.Parse, "invalid LM-OTS type in reference private key", err)
		}
		params[i] = Parameter{Lms: lmsType, Ots: otsType}
	}

	seedEnd := headerLen + int(common.SEED_LEN)
	seed := b[headerLen:seedEnd]

	rk := referenceKey{q: q, params: params, seed: seed}

	rest := b[seedEnd:]
	switch len(rest) {
	case 0:
	case sstExtensionLen:
		rk.sst = &common.SstExtension{
			SigningEntityIdx: binary.BigEndian.Uint32(rest[0:4]),
			TopDivHeight:     rest[4],
		}
	default:
		return referenceKey{}, errs.New(errs.Parse, "reference private key has trailing bytes of unexpected length")
	}

	return rk, nil
}

func (rk *referenceKey) toBytes() []byte {
	b := make([]byte, 0, 9+8*len(rk.params)+len(rk.seed)+sstExtensionLen)
	var u64 [8]byte
	binary.BigEndian.PutUint64(u64[:], rk.q)
	b = append(b, u64[:]...)
	b = append(b, byte(len(rk.params)))

	var u32 [4]byte
	for _, p := range rk.params {
		lt, _ := p.Lms.LmsType()
		binary.BigEndian.PutUint32(u32[:], lt.ToUint32())
		b = append(b, u32[:]...)
		ot, _ := p.Ots.LmsOtsType()
		binary.BigEndian.PutUint32(u32[:], ot.ToUint32())
		b = append(b, u32[:]...)
	}
	b = append(b, rk.seed...)

	if rk.sst != nil {
		binary.BigEndian.PutUint32(u32[:], rk.sst.SigningEntityIdx)
		b = append(b, u32[:]...)
		b = append(b, rk.sst.TopDivHeight)
	}
	return b
}
