package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"licensing/internal/platform/metrics"
	"licensing/internal/sentinel"
	"licensing/internal/user/device"
	"licensing/internal/user/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

const defaultSessionTTL = 24 * time.Hour

type Service struct {
	users      UserStore
	sessions   SessionStore
	tokens     TokenIssuer
	sessionTTL time.Duration
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSessionTTL sets the lifetime of sessions whose request carries no expiration date.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func NewService(users UserStore, sessions SessionStore, tokens TokenIssuer, opts ...Option) *Service {
	svc := &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// CreateUser registers a wallet together with its first session and returns
// a signed session token. A wallet can only be registered once.
func (s *Service) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.CreateUserResult, error) {
	wallet, err := id.ParseWallet(req.WalletAddress)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	expiresAt := s.sessionExpiry(req.ExpirationDate, now)
	if !expiresAt.After(now) {
		return nil, dErrors.New(dErrors.CodeValidation, "expirationDate must be in the future")
	}

	exists, err := s.users.ExistsByWallet(ctx, wallet)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check user")
	}
	if exists {
		return nil, dErrors.New(dErrors.CodeConflict, "To be created user already exists")
	}

	// The user is saved last so that a failure before it leaves the wallet
	// free to register again.
	user := models.NewUser(wallet, now)
	session := &models.Session{
		ID:                id.NewSessionID(),
		WalletAddress:     wallet,
		ChainID:           req.ChainID,
		Domain:            req.Domain,
		UserSessionID:     req.UserSessionID,
		Nonce:             req.Nonce,
		Signature:         req.Signature,
		Payload:           req.Payload,
		ProfileID:         req.ProfileID,
		URI:               req.URI,
		Version:           req.Version,
		DeviceDisplayName: device.DisplayName(requestcontext.UserAgent(ctx)),
		CreatedAt:         now,
		ExpiresAt:         expiresAt,
	}

	token, jti, err := s.tokens.GenerateSessionToken(ctx, wallet, session.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	if err := s.users.Save(ctx, user); err != nil {
		s.discardSession(ctx, session.ID, now)
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.New(dErrors.CodeConflict, "To be created user already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}
	s.metrics.IncrementUsersCreated()

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.ID.String()),
		zap.String("wallet", wallet.String()),
		zap.String("device", session.DeviceDisplayName),
		zap.String("jti", jti),
	)

	return &models.CreateUserResult{
		UserID:       user.ID.String(),
		SessionID:    session.ID.String(),
		SessionToken: token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// discardSession revokes a session whose user could not be saved, so the
// token issued for it is never honoured.
func (s *Service) discardSession(ctx context.Context, sessionID id.SessionID, at time.Time) {
	if err := s.sessions.Revoke(ctx, sessionID, at); err != nil {
		s.logger.Error("failed to revoke orphaned session",
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) sessionExpiry(unixSeconds int64, now time.Time) time.Time {
	if unixSeconds > 0 {
		return time.Unix(unixSeconds, 0).UTC()
	}
	return now.Add(s.sessionTTL)
}

// GetUser looks a user up by wallet, case-insensitively.
func (s *Service) GetUser(ctx context.Context, walletAddress string) (*models.User, error) {
	wallet, err := id.ParseWallet(walletAddress)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByWallet(ctx, wallet)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user")
	}
	return user, nil
}

func (s *Service) UserExists(ctx context.Context, walletAddress string) (bool, error) {
	wallet, err := id.ParseWallet(walletAddress)
	if err != nil {
		return false, err
	}
	exists, err := s.users.ExistsByWallet(ctx, wallet)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check user")
	}
	return exists, nil
}

// SessionActive reports whether the session exists and is neither revoked nor expired.
func (s *Service) SessionActive(ctx context.Context, sessionID id.SessionID) (bool, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return session.IsActive(requestcontext.Now(ctx)), nil
}

// RevokeSession ends a session. Revoking twice is not an error.
func (s *Service) RevokeSession(ctx context.Context, sessionID id.SessionID) error {
	err := s.sessions.Revoke(ctx, sessionID, requestcontext.Now(ctx))
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Session not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	s.logger.Info("session revoked", zap.String("session_id", sessionID.String()))
	return nil
}
