package packing

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "licensing/pkg/domain-errors"
)

func u(v uint64) uint256.Int { return *uint256.NewInt(v) }

func TestPack_KnownVectors(t *testing.T) {
	rec := Record{
		SubmissionDate:          u(1),
		ApprovalDate:            u(0),
		ExpirationDate:          u(2),
		LicenseFee:              u(3),
		ReportingFrequency:      u(5),
		ReportingGracePeriod:    u(6),
		RoyaltyGracePeriod:      u(7),
		UntimelyReports:         u(8),
		UntimelyRoyaltyPayments: u(9),
		ExtraData:               u(10),
	}

	words, err := Pack(rec)
	require.NoError(t, err)
	assert.Equal(t, "0x3000000000200000000000000000001", words.A.Hex())
	assert.Equal(t, "0xa0908000000070000000600000005", words.B.Hex())
}

func TestPack_ExtraDataSitsAboveRoyaltyPayments(t *testing.T) {
	rec := Record{UntimelyRoyaltyPayments: u(0xff), ExtraData: u(1)}

	words, err := Pack(rec)
	require.NoError(t, err)

	want := new(uint256.Int).Lsh(uint256.NewInt(0xff), 104)
	want.Or(want, new(uint256.Int).Lsh(uint256.NewInt(1), 112))
	assert.True(t, want.Eq(&words.B), "got %s", words.B.Hex())
}

func TestPack_RejectsOverflow(t *testing.T) {
	tests := []struct {
		name  string
		field Field
	}{
		{"license fee at 2^136", LicenseFee},
		{"submission date at 2^40", SubmissionDate},
		{"untimely reports at 2^8", UntimelyReports},
		{"extra data at 2^144", ExtraData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			rec.Get(tt.field).Lsh(uint256.NewInt(1), SlotOf(tt.field).Width)

			words, err := Pack(rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, err.Error(), tt.field.String())
			assert.Equal(t, Words{}, words)
		})
	}
}

func TestPack_AcceptsMaximumValues(t *testing.T) {
	var rec Record
	for _, f := range Fields() {
		rec.Get(f).Set(Mask(SlotOf(f).Width))
	}

	words, err := Pack(rec)
	require.NoError(t, err)

	full := new(uint256.Int).SetAllOne()
	assert.True(t, full.Eq(&words.A))
	assert.True(t, full.Eq(&words.B))
	assert.Equal(t, rec, Unpack(words))
}

func TestUnpack_AnyWordsDecode(t *testing.T) {
	w := Words{}
	w.A.SetAllOne()
	w.B.SetAllOne()

	rec := Unpack(w)
	for _, f := range Fields() {
		assert.True(t, Mask(SlotOf(f).Width).Eq(rec.Get(f)), f.String())
	}
}

func TestPackUnpack_RandomRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5_000; i++ {
		var rec Record
		for _, f := range Fields() {
			v := rec.Get(f)
			*v = uint256.Int{r.Uint64(), r.Uint64(), r.Uint64(), r.Uint64()}
			v.And(v, Mask(SlotOf(f).Width))
		}

		words, err := Pack(rec)
		require.NoError(t, err)
		require.Equal(t, rec, Unpack(words), "iteration %d", i)
	}
}

func TestNewApplication(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	terms := Terms{
		Duration:             31_536_000,
		LicenseFee:           *uint256.MustFromDecimal("90000000000000000000"),
		ReportingFrequency:   2_592_000,
		ReportingGracePeriod: 604_800,
		RoyaltyGracePeriod:   1_209_600,
		ExtraData:            u(7),
	}

	rec := NewApplication(terms, now)

	assert.Equal(t, uint64(now.Unix()), rec.SubmissionDate.Uint64())
	assert.True(t, rec.ApprovalDate.IsZero())
	assert.Equal(t, uint64(now.Unix())+31_536_000, rec.ExpirationDate.Uint64())
	assert.Equal(t, terms.LicenseFee, rec.LicenseFee)
	assert.Equal(t, uint64(2_592_000), rec.ReportingFrequency.Uint64())
	assert.Equal(t, uint64(604_800), rec.ReportingGracePeriod.Uint64())
	assert.Equal(t, uint64(1_209_600), rec.RoyaltyGracePeriod.Uint64())
	assert.True(t, rec.UntimelyReports.IsZero())
	assert.True(t, rec.UntimelyRoyaltyPayments.IsZero())
	assert.Equal(t, uint64(7), rec.ExtraData.Uint64())

	words, err := Pack(rec)
	require.NoError(t, err)
	assert.Equal(t, rec, Unpack(words))
}
