package packing

import (
	"fmt"

	"github.com/holiman/uint256"

	dErrors "licensing/pkg/domain-errors"
)

// Pack shifts every field of rec to its offset and ORs it into its word.
// A value that does not fit its width is rejected before any bits are combined,
// so an oversized value can never spill into a neighbouring field.
func Pack(rec Record) (Words, error) {
	if err := CheckRanges(rec); err != nil {
		return Words{}, err
	}

	var out Words
	var shifted uint256.Int
	for _, slot := range layout {
		shifted.Lsh(rec.Get(slot.Field), slot.Offset)
		w := out.word(slot.Word)
		w.Or(w, &shifted)
	}
	return out, nil
}

// CheckRanges verifies that every value of rec is below 2^width of its slot.
func CheckRanges(rec Record) error {
	for _, slot := range layout {
		v := rec.Get(slot.Field)
		if uint(v.BitLen()) > slot.Width {
			return dErrors.Wrap(
				fmt.Errorf("%s: %w", slot.Field, ErrOutOfRange),
				dErrors.CodeValidation,
				fmt.Sprintf("%s exceeds %d bits", slot.Field, slot.Width),
			)
		}
	}
	return nil
}
