// Package packing converts application records to and from the two 256-bit
// words the License contract stores as firstPackedData and secondPackedData.
package packing

// Field identifies one bit field of a packed application.
type Field uint8

const (
	SubmissionDate Field = iota
	ApprovalDate
	ExpirationDate
	LicenseFee
	ReportingFrequency
	ReportingGracePeriod
	RoyaltyGracePeriod
	UntimelyReports
	UntimelyRoyaltyPayments
	ExtraData

	fieldCount
)

// Word selects one of the two packed words.
type Word uint8

const (
	WordA Word = iota
	WordB
)

// Slot is the location of a field inside the packed words.
type Slot struct {
	Field  Field
	Word   Word
	Offset uint
	Width  uint
}

// End returns the first bit past the slot.
func (s Slot) End() uint { return s.Offset + s.Width }

// layout is indexed by Field. Bit 0 is the least significant bit of a word.
var layout = [fieldCount]Slot{
	{Field: SubmissionDate, Word: WordA, Offset: 0, Width: 40},
	{Field: ApprovalDate, Word: WordA, Offset: 40, Width: 40},
	{Field: ExpirationDate, Word: WordA, Offset: 80, Width: 40},
	{Field: LicenseFee, Word: WordA, Offset: 120, Width: 136},
	{Field: ReportingFrequency, Word: WordB, Offset: 0, Width: 32},
	{Field: ReportingGracePeriod, Word: WordB, Offset: 32, Width: 32},
	{Field: RoyaltyGracePeriod, Word: WordB, Offset: 64, Width: 32},
	{Field: UntimelyReports, Word: WordB, Offset: 96, Width: 8},
	{Field: UntimelyRoyaltyPayments, Word: WordB, Offset: 104, Width: 8},
	{Field: ExtraData, Word: WordB, Offset: 112, Width: 144},
}

var fieldNames = [fieldCount]string{
	"submission_date",
	"approval_date",
	"expiration_date",
	"license_fee",
	"reporting_frequency",
	"reporting_grace_period",
	"royalty_grace_period",
	"untimely_reports",
	"untimely_royalty_payments",
	"extra_data",
}

// SlotOf returns the registered slot of f. Values outside the enumeration
// yield a zero-width slot.
func SlotOf(f Field) Slot {
	if !f.Valid() {
		return Slot{Field: f}
	}
	return layout[f]
}

// Fields lists every field in layout order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

func (f Field) Valid() bool { return f < fieldCount }

func (f Field) String() string {
	if !f.Valid() {
		return "unknown_field"
	}
	return fieldNames[f]
}

func (w Word) String() string {
	if w == WordA {
		return "first_packed_data"
	}
	return "second_packed_data"
}
