package models

import (
	id "licensing/pkg/domain"
	s "licensing/pkg/platform/strings"
	"licensing/pkg/platform/validation"
)

// RegisterRequest is the body of POST /licensee/register.
type RegisterRequest struct {
	WalletAddress        string  `json:"wallet_address" validate:"required,wallet"`
	Name                 string  `json:"name" validate:"notblank,max=200,nodelim"`
	DateOfBirth          string  `json:"dob" validate:"required,rfc3339"`
	Address              string  `json:"address" validate:"max=500,nodelim"`
	EmailAddress         string  `json:"email_address" validate:"required,email,max=254,nodelim"`
	PhoneNumber          string  `json:"phone_number" validate:"max=50,nodelim"`
	Company              *string `json:"company" validate:"omitempty,max=200,nodelim"`
	Nationality          string  `json:"nationality" validate:"max=100,nodelim"`
	CountryOfApplication string  `json:"country_of_application" validate:"notblank,max=100,nodelim"`
}

func (r *RegisterRequest) Sanitize() {
	s.TrimAll(&r.WalletAddress, &r.Name, &r.DateOfBirth, &r.EmailAddress, r.Company)
}

// Normalize puts a well-formed wallet in canonical form: 0x prefix, lower case.
// Anything else is left for Validate to reject.
func (r *RegisterRequest) Normalize() {
	if wallet, err := id.ParseWallet(r.WalletAddress); err == nil {
		r.WalletAddress = wallet.String()
	}
}

func (r *RegisterRequest) Validate() error {
	return validation.Validate(r)
}

// Params converts the request to codec input.
func (r *RegisterRequest) Params() RegistrationParams {
	return RegistrationParams{
		WalletAddress:        r.WalletAddress,
		Name:                 r.Name,
		DateOfBirth:          r.DateOfBirth,
		Address:              r.Address,
		EmailAddress:         r.EmailAddress,
		PhoneNumber:          r.PhoneNumber,
		Company:              r.Company,
		Nationality:          r.Nationality,
		CountryOfApplication: r.CountryOfApplication,
	}
}
