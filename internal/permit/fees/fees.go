// Package fees prices a license application from its permit category and
// duration.
package fees

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	dErrors "licensing/pkg/domain-errors"
)

// Durations accepted by the schedule, in seconds.
const (
	ThreeMonths = 7_776_000
	SixMonths   = 15_552_000
	OneYear     = 31_536_000
	TwoYears    = 63_072_000
)

// Permit categories with a base rate.
const (
	AssetCreation      = "Asset Creation"
	ExistingAssetUsage = "Existing Asset Usage"
	AssetModification  = "Asset Modification"
)

var (
	ErrPermitNotFound      = errors.New("permit does not exist")
	ErrUnknownPermit       = errors.New("permit has no base rate")
	ErrUnsupportedDuration = errors.New("unsupported license duration")
)

// Base rates in the smallest native currency unit (18 decimals).
var baseRates = map[string]*uint256.Int{
	AssetCreation:      uint256.MustFromDecimal("15000000000000000000"),
	ExistingAssetUsage: uint256.MustFromDecimal("7500000000000000000"),
	AssetModification:  uint256.MustFromDecimal("12000000000000000000"),
}

var durationMultipliers = map[uint64]uint64{
	ThreeMonths: 1,
	SixMonths:   3,
	OneYear:     6,
	TwoYears:    9,
}

// PermitOracle reports whether base terms are registered for a permit.
type PermitOracle interface {
	PermitExists(ctx context.Context, permit string) (bool, error)
}

// Resolver computes fees. It is safe for concurrent use.
type Resolver struct {
	oracle PermitOracle
}

func NewResolver(oracle PermitOracle) *Resolver {
	return &Resolver{oracle: oracle}
}

// Calculate returns baseRate(permit) * multiplier(duration). The oracle is
// consulted first and its errors are returned unchanged.
func (r *Resolver) Calculate(ctx context.Context, permit string, durationSeconds uint64) (*uint256.Int, error) {
	exists, err := r.oracle.PermitExists(ctx, permit)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, dErrors.Wrap(ErrPermitNotFound, dErrors.CodeLookup, "permit does not exist")
	}
	return Lookup(permit, durationSeconds)
}

// Lookup prices a permit without consulting the oracle.
func Lookup(permit string, durationSeconds uint64) (*uint256.Int, error) {
	base, ok := baseRates[permit]
	if !ok {
		return nil, dErrors.Wrap(ErrUnknownPermit, dErrors.CodeLookup, fmt.Sprintf("no base rate for permit %q", permit))
	}
	multiplier, ok := durationMultipliers[durationSeconds]
	if !ok {
		return nil, dErrors.Wrap(ErrUnsupportedDuration, dErrors.CodeLookup, fmt.Sprintf("unsupported duration %d seconds", durationSeconds))
	}
	return new(uint256.Int).Mul(base, uint256.NewInt(multiplier)), nil
}

// Permits lists the categories with a base rate.
func Permits() []string {
	return []string{AssetCreation, ExistingAssetUsage, AssetModification}
}

// Durations lists the accepted durations in ascending order.
func Durations() []uint64 {
	return []uint64{ThreeMonths, SixMonths, OneYear, TwoYears}
}
