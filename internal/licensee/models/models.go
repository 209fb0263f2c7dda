package models

import "time"

// Licensee is the decoded account of a license holder as stored on the ledger.
type Licensee struct {
	WalletAddress        string    `json:"wallet_address"`
	Name                 string    `json:"name"`
	DateOfBirth          time.Time `json:"dob"`
	Address              string    `json:"address"`
	EmailAddress         string    `json:"email_address"`
	PhoneNumber          string    `json:"phone_number"`
	Company              *string   `json:"company"`
	Nationality          string    `json:"nationality"`
	CountryOfApplication string    `json:"country_of_application"`
	// Usable is reported by the ledger next to the raw bytes; it is not part of the encoded text.
	Usable bool `json:"usable"`
}

// Absent returns the record used for a wallet that has no account yet.
func Absent() *Licensee {
	return &Licensee{}
}

// Exists reports whether the record carries account data.
func (l *Licensee) Exists() bool {
	return l != nil && l.WalletAddress != ""
}

// Raw is the ledger form of a licensee account: hex-encoded text plus the usable flag.
type Raw struct {
	Data   string `json:"data"`
	Usable bool   `json:"usable"`
}

// RegistrationParams are the fields a wallet submits to register an account.
// DateOfBirth stays textual so the original RFC3339 representation is encoded verbatim.
type RegistrationParams struct {
	WalletAddress        string
	Name                 string
	DateOfBirth          string
	Address              string
	EmailAddress         string
	PhoneNumber          string
	Company              *string
	Nationality          string
	CountryOfApplication string
}

// ParamsOf rebuilds the registration parameters that encode to l.
func ParamsOf(l *Licensee) RegistrationParams {
	return RegistrationParams{
		WalletAddress:        l.WalletAddress,
		Name:                 l.Name,
		DateOfBirth:          l.DateOfBirth.Format(time.RFC3339Nano),
		Address:              l.Address,
		EmailAddress:         l.EmailAddress,
		PhoneNumber:          l.PhoneNumber,
		Company:              l.Company,
		Nationality:          l.Nationality,
		CountryOfApplication: l.CountryOfApplication,
	}
}
