package jwttoken

import (
	"licensing/internal/platform/middleware"
)

func ToMiddlewareClaims(claims *SessionClaims) *middleware.SessionClaims {
	return &middleware.SessionClaims{
		Wallet:    claims.Wallet,
		SessionID: claims.SessionID,
		JTI:       claims.ID,
	}
}

type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ExtractToken(authHeader string) (string, error) {
	return ExtractBearerToken(authHeader)
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
