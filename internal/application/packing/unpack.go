package packing

import "github.com/holiman/uint256"

// Unpack extracts every field as (word >> offset) & mask(width). Any pair of
// words decodes; whether the result makes business sense is up to the caller.
func Unpack(w Words) Record {
	var rec Record
	for _, slot := range layout {
		dst := rec.Get(slot.Field)
		dst.Rsh(w.word(slot.Word), slot.Offset)
		dst.And(dst, Mask(slot.Width))
	}
	return rec
}

// Mask returns (1 << width) - 1.
func Mask(width uint) *uint256.Int {
	m := new(uint256.Int).Lsh(uint256.NewInt(1), width)
	return m.SubUint64(m, 1)
}
