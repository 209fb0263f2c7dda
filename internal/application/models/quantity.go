package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/holiman/uint256"

	dErrors "licensing/pkg/domain-errors"
)

// Quantity is a 256-bit unsigned integer carried as a JSON string. It decodes
// from a decimal string, a 0x-prefixed hex string or a plain JSON number, and
// encodes as a decimal string.
type Quantity uint256.Int

// Word is a packed 256-bit storage word. It decodes like Quantity and encodes
// as a 0x-prefixed hex string.
type Word uint256.Int

func NewQuantity(v *uint256.Int) Quantity { return Quantity(*v) }
func NewWord(v *uint256.Int) Word         { return Word(*v) }

func (q *Quantity) Int() *uint256.Int { return (*uint256.Int)(q) }
func (w *Word) Int() *uint256.Int     { return (*uint256.Int)(w) }

func (q Quantity) MarshalJSON() ([]byte, error) {
	v := uint256.Int(q)
	return json.Marshal(v.Dec())
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	v, err := parseJSONUint256(data)
	if err != nil {
		return err
	}
	*q = Quantity(*v)
	return nil
}

func (w Word) MarshalJSON() ([]byte, error) {
	v := uint256.Int(w)
	return json.Marshal(v.Hex())
}

func (w *Word) UnmarshalJSON(data []byte) error {
	v, err := parseJSONUint256(data)
	if err != nil {
		return err
	}
	*w = Word(*v)
	return nil
}

func parseJSONUint256(data []byte) (*uint256.Int, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return new(uint256.Int), nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return ParseUint256(s)
	}
	return ParseUint256(string(data))
}

// ParseUint256 reads a decimal or 0x-prefixed hex string. Leading zeros are
// accepted in both forms.
func ParseUint256(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "empty integer")
	}

	if rest, ok := cutHexPrefix(s); ok {
		digits := strings.TrimLeft(rest, "0")
		if digits == "" {
			if rest == "" {
				return nil, dErrors.New(dErrors.CodeValidation, "empty hex integer")
			}
			return new(uint256.Int), nil
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid hex integer "+s)
		}
		return v, nil
	}

	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid decimal integer "+s)
	}
	return v, nil
}

func cutHexPrefix(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return rest, true
	}
	return strings.CutPrefix(s, "0X")
}
