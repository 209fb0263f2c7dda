package packing

import "errors"

// ErrOutOfRange is returned when a value does not fit the width of its slot.
var ErrOutOfRange = errors.New("value exceeds field width")
