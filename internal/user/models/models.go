package models

import (
	"time"

	id "licensing/pkg/domain"
)

// User is a wallet-owning account. Profile fields stay empty until the
// licensee registers; KYC is tracked but never performed here.
type User struct {
	ID                  id.UserID
	WalletAddress       id.Wallet
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Name                *string
	DateOfBirth         *time.Time
	Email               *string
	Phone               *string
	Address             *string
	Company             *string
	KYCVerified         bool
	LastKYCVerification *time.Time
}

// NewUser builds an empty profile for a wallet that just signed in.
func NewUser(wallet id.Wallet, now time.Time) *User {
	return &User{
		ID:            id.NewUserID(),
		WalletAddress: wallet,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Session is a sign-in session. The SIWE fields are stored as presented by the
// web app; their signature is not verified by this service.
type Session struct {
	ID                id.SessionID
	WalletAddress     id.Wallet
	ChainID           uint32
	Domain            string
	UserSessionID     string
	Nonce             string
	Signature         string
	Payload           map[string]any
	ProfileID         string
	URI               string
	Version           uint8
	DeviceDisplayName string
	CreatedAt         time.Time
	ExpiresAt         time.Time
	RevokedAt         *time.Time
}

// IsActive reports whether the session is unrevoked and unexpired at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Revoke marks the session revoked. Returns false if it already was.
func (s *Session) Revoke(at time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	s.RevokedAt = &at
	return true
}
