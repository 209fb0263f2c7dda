package service

import (
	"context"
	"time"

	"licensing/internal/user/models"
	id "licensing/pkg/domain"
)

// UserStore defines the persistence interface for user data.
// Error Contract: FindByWallet returns sentinel.ErrNotFound when the wallet has no user;
// Save returns sentinel.ErrAlreadyExists when it does.
type UserStore interface {
	Save(ctx context.Context, user *models.User) error
	FindByWallet(ctx context.Context, wallet id.Wallet) (*models.User, error)
	ExistsByWallet(ctx context.Context, wallet id.Wallet) (bool, error)
}

// SessionStore defines the persistence interface for session data.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Revoke(ctx context.Context, sessionID id.SessionID, at time.Time) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateSessionToken(ctx context.Context, wallet id.Wallet, sessionID id.SessionID) (string, string, error)
}
