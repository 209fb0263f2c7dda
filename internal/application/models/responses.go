package models

import (
	"github.com/holiman/uint256"

	"licensing/internal/application/packing"
)

type FeeResult struct {
	Permit     string   `json:"permit"`
	Duration   uint64   `json:"duration"`
	LicenseFee Quantity `json:"license_fee"`
}

// PackResult is a packed application with the values derived while packing.
type PackResult struct {
	FirstPackedData  Word            `json:"first_packed_data"`
	SecondPackedData Word            `json:"second_packed_data"`
	Application      ApplicationView `json:"application"`
}

// VerifyResult compares local packing with the contract's.
type VerifyResult struct {
	Match  bool       `json:"match"`
	Local  PackResult `json:"local"`
	Ledger WordsView  `json:"ledger"`
}

type WordsView struct {
	FirstPackedData  Word `json:"first_packed_data"`
	SecondPackedData Word `json:"second_packed_data"`
}

// ApplicationView is the JSON form of packing.Record. Fields up to 40 bits
// wide are plain numbers.
type ApplicationView struct {
	SubmissionDate          uint64   `json:"submission_date"`
	ApprovalDate            uint64   `json:"approval_date"`
	ExpirationDate          uint64   `json:"expiration_date"`
	LicenseFee              Quantity `json:"license_fee"`
	ReportingFrequency      uint64   `json:"reporting_frequency"`
	ReportingGracePeriod    uint64   `json:"reporting_grace_period"`
	RoyaltyGracePeriod      uint64   `json:"royalty_grace_period"`
	UntimelyReports         uint64   `json:"untimely_reports"`
	UntimelyRoyaltyPayments uint64   `json:"untimely_royalty_payments"`
	ExtraData               Quantity `json:"extra_data"`
}

func ViewOf(rec *packing.Record) ApplicationView {
	return ApplicationView{
		SubmissionDate:          rec.SubmissionDate.Uint64(),
		ApprovalDate:            rec.ApprovalDate.Uint64(),
		ExpirationDate:          rec.ExpirationDate.Uint64(),
		LicenseFee:              NewQuantity(&rec.LicenseFee),
		ReportingFrequency:      rec.ReportingFrequency.Uint64(),
		ReportingGracePeriod:    rec.ReportingGracePeriod.Uint64(),
		RoyaltyGracePeriod:      rec.RoyaltyGracePeriod.Uint64(),
		UntimelyReports:         rec.UntimelyReports.Uint64(),
		UntimelyRoyaltyPayments: rec.UntimelyRoyaltyPayments.Uint64(),
		ExtraData:               NewQuantity(&rec.ExtraData),
	}
}

func WordsOf(w *packing.Words) WordsView {
	return WordsView{FirstPackedData: NewWord(&w.A), SecondPackedData: NewWord(&w.B)}
}

// Words converts the request back to packing form.
func (r *UnpackRequest) Words() packing.Words {
	return packing.Words{A: uint256.Int(r.FirstPackedData), B: uint256.Int(r.SecondPackedData)}
}
