package packing

import (
	"time"

	"github.com/holiman/uint256"
)

// Record is the logical form of an application before packing.
type Record struct {
	SubmissionDate          uint256.Int
	ApprovalDate            uint256.Int
	ExpirationDate          uint256.Int
	LicenseFee              uint256.Int
	ReportingFrequency      uint256.Int
	ReportingGracePeriod    uint256.Int
	RoyaltyGracePeriod      uint256.Int
	UntimelyReports         uint256.Int
	UntimelyRoyaltyPayments uint256.Int
	ExtraData               uint256.Int
}

// Words is the packed form of a Record.
type Words struct {
	A uint256.Int
	B uint256.Int
}

// Terms are the caller-supplied parameters of a new application. The dates and
// violation counters are derived at submission time.
type Terms struct {
	Duration             uint64
	LicenseFee           uint256.Int
	ReportingFrequency   uint64
	ReportingGracePeriod uint64
	RoyaltyGracePeriod   uint64
	ExtraData            uint256.Int
}

// NewApplication builds the record submitted at now. The application starts
// unapproved and without untimely reports or payments.
func NewApplication(t Terms, now time.Time) Record {
	submitted := uint64(now.Unix())

	var rec Record
	rec.SubmissionDate.SetUint64(submitted)
	rec.ExpirationDate.AddUint64(uint256.NewInt(submitted), t.Duration)
	rec.LicenseFee = t.LicenseFee
	rec.ReportingFrequency.SetUint64(t.ReportingFrequency)
	rec.ReportingGracePeriod.SetUint64(t.ReportingGracePeriod)
	rec.RoyaltyGracePeriod.SetUint64(t.RoyaltyGracePeriod)
	rec.ExtraData = t.ExtraData
	return rec
}

// Get returns a pointer to the value stored for f, or nil for an unknown field.
func (r *Record) Get(f Field) *uint256.Int {
	switch f {
	case SubmissionDate:
		return &r.SubmissionDate
	case ApprovalDate:
		return &r.ApprovalDate
	case ExpirationDate:
		return &r.ExpirationDate
	case LicenseFee:
		return &r.LicenseFee
	case ReportingFrequency:
		return &r.ReportingFrequency
	case ReportingGracePeriod:
		return &r.ReportingGracePeriod
	case RoyaltyGracePeriod:
		return &r.RoyaltyGracePeriod
	case UntimelyReports:
		return &r.UntimelyReports
	case UntimelyRoyaltyPayments:
		return &r.UntimelyRoyaltyPayments
	case ExtraData:
		return &r.ExtraData
	}
	return nil
}

func (w *Words) word(i Word) *uint256.Int {
	if i == WordA {
		return &w.A
	}
	return &w.B
}
