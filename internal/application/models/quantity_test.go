package models

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "licensing/pkg/domain-errors"
)

func TestParseUint256(t *testing.T) {
	tests := []struct {
		in   string
		want *uint256.Int
	}{
		{"0", uint256.NewInt(0)},
		{"42", uint256.NewInt(42)},
		{"0x2a", uint256.NewInt(42)},
		{"0X2A", uint256.NewInt(42)},
		{"0x002a", uint256.NewInt(42)},
		{"0x0", uint256.NewInt(0)},
		{"0x000", uint256.NewInt(0)},
		{" 15000000000000000000 ", uint256.MustFromDecimal("15000000000000000000")},
		{"0x" + "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", new(uint256.Int).SetAllOne()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUint256(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUint256_Invalid(t *testing.T) {
	for _, in := range []string{"", "0x", "-1", "1.5", "0xzz", "abc", "0x1" + "0000000000000000000000000000000000000000000000000000000000000000"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseUint256(in)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestQuantityJSON(t *testing.T) {
	var body struct {
		A Quantity `json:"a"`
		B Quantity `json:"b"`
		C Quantity `json:"c"`
		D Quantity `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"15000000000000000000","b":"0xff","c":7,"d":null}`), &body))

	assert.Equal(t, "15000000000000000000", body.A.Int().Dec())
	assert.Equal(t, uint64(255), body.B.Int().Uint64())
	assert.Equal(t, uint64(7), body.C.Int().Uint64())
	assert.True(t, body.D.Int().IsZero())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"15000000000000000000","b":"255","c":"7","d":"0"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"nope"}`), &body))
}

func TestWordJSON(t *testing.T) {
	var w Word
	require.NoError(t, json.Unmarshal([]byte(`"0x0003000000000200000000000000000001"`), &w))

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `"0x3000000000200000000000000000001"`, string(out))
}
