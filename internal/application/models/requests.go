package models

import (
	"strings"

	"licensing/pkg/platform/validation"
)

// FeeRequest asks for the fee of a permit over a duration in seconds.
type FeeRequest struct {
	Permit   string `json:"permit" validate:"notblank,max=100"`
	Duration uint64 `json:"duration" validate:"required"`
}

func (r *FeeRequest) Sanitize() { r.Permit = strings.TrimSpace(r.Permit) }

func (r *FeeRequest) Validate() error { return validation.Validate(r) }

// PackRequest carries the terms of a new application. The fee is resolved
// from the permit and duration; dates come from the request clock.
type PackRequest struct {
	Permit               string   `json:"permit" validate:"notblank,max=100"`
	Duration             uint64   `json:"duration" validate:"required"`
	ReportingFrequency   uint64   `json:"reporting_frequency"`
	ReportingGracePeriod uint64   `json:"reporting_grace_period"`
	RoyaltyGracePeriod   uint64   `json:"royalty_grace_period"`
	ExtraData            Quantity `json:"extra_data"`
}

func (r *PackRequest) Sanitize() { r.Permit = strings.TrimSpace(r.Permit) }

func (r *PackRequest) Validate() error { return validation.Validate(r) }

// UnpackRequest carries the two packed words.
type UnpackRequest struct {
	FirstPackedData  Word `json:"first_packed_data"`
	SecondPackedData Word `json:"second_packed_data"`
}
