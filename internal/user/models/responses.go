package models

import "time"

// CreateUserResult is returned once the user and its first session exist.
type CreateUserResult struct {
	UserID       string    `json:"user_id"`
	SessionID    string    `json:"session_id"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UserProfile is the JSON view of a User.
type UserProfile struct {
	ID                  string     `json:"id"`
	WalletAddress       string     `json:"wallet_address"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Name                *string    `json:"name,omitempty"`
	DateOfBirth         *time.Time `json:"dob,omitempty"`
	Email               *string    `json:"email,omitempty"`
	Phone               *string    `json:"phone,omitempty"`
	Address             *string    `json:"address,omitempty"`
	Company             *string    `json:"company,omitempty"`
	KYCVerified         bool       `json:"kyc_verified"`
	LastKYCVerification *time.Time `json:"last_kyc_verification,omitempty"`
}

func ProfileOf(u *User) *UserProfile {
	return &UserProfile{
		ID:                  u.ID.String(),
		WalletAddress:       u.WalletAddress.String(),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
		Name:                u.Name,
		DateOfBirth:         u.DateOfBirth,
		Email:               u.Email,
		Phone:               u.Phone,
		Address:             u.Address,
		Company:             u.Company,
		KYCVerified:         u.KYCVerified,
		LastKYCVerification: u.LastKYCVerification,
	}
}
