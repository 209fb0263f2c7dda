package models

import (
	"strings"

	"licensing/pkg/platform/validation"
)

// CreateUserRequest is the body of POST /user/create. Field names follow the
// web app's sign-in payload.
type CreateUserRequest struct {
	WalletAddress  string         `json:"walletAddress" validate:"required,wallet"`
	ExpirationDate int64          `json:"expirationDate" validate:"gte=0"`
	ChainID        uint32         `json:"chainId"`
	Domain         string         `json:"domain" validate:"max=253"`
	UserSessionID  string         `json:"userSessionId" validate:"notblank,max=200"`
	Nonce          string         `json:"nonce" validate:"notblank,max=200"`
	Signature      string         `json:"signature" validate:"max=1000"`
	Payload        map[string]any `json:"payload,omitempty"`
	ProfileID      string         `json:"profileId" validate:"max=200"`
	URI            string         `json:"uri" validate:"max=2048"`
	Version        uint8          `json:"version"`
}

func (r *CreateUserRequest) Sanitize() {
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	r.Domain = strings.TrimSpace(r.Domain)
	r.URI = strings.TrimSpace(r.URI)
}

func (r *CreateUserRequest) Normalize() {
	r.WalletAddress = strings.ToLower(r.WalletAddress)
}

func (r *CreateUserRequest) Validate() error {
	return validation.Validate(r)
}
