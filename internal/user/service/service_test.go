package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks UserStore,SessionStore,TokenIssuer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"licensing/internal/platform/metrics"
	"licensing/internal/sentinel"
	"licensing/internal/user/models"
	"licensing/internal/user/service/mocks"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

const (
	rawWallet = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
	wallet    = id.Wallet("0x8617e340b3d01fa5f11f306f4090fd50e238070d")
	chromeUA  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	users    *mocks.MockUserStore
	sessions *mocks.MockSessionStore
	tokens   *mocks.MockTokenIssuer
	metrics  *metrics.Metrics
	service  *Service
	now      time.Time
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserStore(s.ctrl)
	s.sessions = mocks.NewMockSessionStore(s.ctrl)
	s.tokens = mocks.NewMockTokenIssuer(s.ctrl)
	s.metrics = metrics.New()
	s.service = NewService(s.users, s.sessions, s.tokens,
		WithLogger(zap.NewNop()),
		WithMetrics(s.metrics),
		WithSessionTTL(2*time.Hour),
	)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctx = requestcontext.WithUserAgent(s.ctx, chromeUA)
}

func (s *ServiceSuite) request() *models.CreateUserRequest {
	return &models.CreateUserRequest{
		WalletAddress: rawWallet,
		ChainID:       1,
		Domain:        "app.example.com",
		UserSessionID: "sess-1",
		Nonce:         "n0nce",
		Signature:     "0xsig",
		ProfileID:     "profile-1",
		URI:           "https://app.example.com/login",
		Version:       1,
	}
}

func (s *ServiceSuite) TestCreateUser() {
	s.Run("creates user, session and token", func() {
		var saved *models.User
		var created *models.Session
		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(false, nil)
		s.users.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})
		s.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sess *models.Session) error {
			created = sess
			return nil
		})
		s.tokens.EXPECT().GenerateSessionToken(gomock.Any(), wallet, gomock.Any()).Return("signed.jwt", "jti", nil)

		res, err := s.service.CreateUser(s.ctx, s.request())
		s.Require().NoError(err)

		s.Equal(wallet, saved.WalletAddress)
		s.Equal(s.now, saved.CreatedAt)
		s.Equal(saved.ID.String(), res.UserID)
		s.Equal(created.ID.String(), res.SessionID)
		s.Equal("signed.jwt", res.SessionToken)
		s.Equal(s.now.Add(2*time.Hour), res.ExpiresAt)
		s.Equal(wallet, created.WalletAddress)
		s.Equal("n0nce", created.Nonce)
		s.Contains(created.DeviceDisplayName, "Chrome")
	})

	s.Run("uses the requested expiration date", func() {
		req := s.request()
		req.ExpirationDate = s.now.Add(30 * time.Minute).Unix()

		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(false, nil)
		s.users.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		s.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.tokens.EXPECT().GenerateSessionToken(gomock.Any(), wallet, gomock.Any()).Return("t", "j", nil)

		res, err := s.service.CreateUser(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(s.now.Add(30*time.Minute), res.ExpiresAt)
	})

	s.Run("rejects an expiration date in the past", func() {
		req := s.request()
		req.ExpirationDate = s.now.Add(-time.Minute).Unix()

		_, err := s.service.CreateUser(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("existing wallet conflicts", func() {
		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(true, nil)

		_, err := s.service.CreateUser(s.ctx, s.request())
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("To be created user already exists", err.Error())
	})

	s.Run("concurrent registration conflicts and revokes the new session", func() {
		var created *models.Session
		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(false, nil)
		s.tokens.EXPECT().GenerateSessionToken(gomock.Any(), wallet, gomock.Any()).Return("t", "j", nil)
		s.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sess *models.Session) error {
			created = sess
			return nil
		})
		s.users.EXPECT().Save(gomock.Any(), gomock.Any()).Return(fmt.Errorf("user: %w", sentinel.ErrAlreadyExists))
		s.sessions.EXPECT().Revoke(gomock.Any(), gomock.Any(), s.now).DoAndReturn(func(_ context.Context, sessionID id.SessionID, _ time.Time) error {
			s.Equal(created.ID, sessionID)
			return nil
		})

		_, err := s.service.CreateUser(s.ctx, s.request())
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("session failure saves no user and a retry succeeds", func() {
		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(false, nil).Times(2)
		s.tokens.EXPECT().GenerateSessionToken(gomock.Any(), wallet, gomock.Any()).Return("t", "j", nil).Times(2)
		gomock.InOrder(
			s.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("mongo down")),
			s.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)
		s.users.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := s.service.CreateUser(s.ctx, s.request())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))

		res, err := s.service.CreateUser(s.ctx, s.request())
		s.Require().NoError(err)
		s.Equal("t", res.SessionToken)
	})

	s.Run("invalid wallet", func() {
		req := s.request()
		req.WalletAddress = "not-a-wallet"

		_, err := s.service.CreateUser(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("store failure is internal", func() {
		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(false, errors.New("connection reset"))

		_, err := s.service.CreateUser(s.ctx, s.request())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("token failure is internal and stores nothing", func() {
		s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(false, nil)
		s.tokens.EXPECT().GenerateSessionToken(gomock.Any(), wallet, gomock.Any()).Return("", "", errors.New("rand failed"))

		_, err := s.service.CreateUser(s.ctx, s.request())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestGetUser() {
	s.Run("found case-insensitively", func() {
		user := models.NewUser(wallet, s.now)
		s.users.EXPECT().FindByWallet(gomock.Any(), wallet).Return(user, nil)

		got, err := s.service.GetUser(s.ctx, rawWallet)
		s.Require().NoError(err)
		s.Equal(user, got)
	})

	s.Run("not found", func() {
		s.users.EXPECT().FindByWallet(gomock.Any(), wallet).Return(nil, fmt.Errorf("x: %w", sentinel.ErrNotFound))

		_, err := s.service.GetUser(s.ctx, rawWallet)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestUserExists() {
	s.users.EXPECT().ExistsByWallet(gomock.Any(), wallet).Return(true, nil)

	exists, err := s.service.UserExists(s.ctx, rawWallet)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *ServiceSuite) TestSessionActive() {
	sessionID := id.NewSessionID()

	s.Run("active", func() {
		s.sessions.EXPECT().FindByID(gomock.Any(), sessionID).Return(&models.Session{ExpiresAt: s.now.Add(time.Minute)}, nil)
		active, err := s.service.SessionActive(s.ctx, sessionID)
		s.Require().NoError(err)
		s.True(active)
	})

	s.Run("expired", func() {
		s.sessions.EXPECT().FindByID(gomock.Any(), sessionID).Return(&models.Session{ExpiresAt: s.now}, nil)
		active, err := s.service.SessionActive(s.ctx, sessionID)
		s.Require().NoError(err)
		s.False(active)
	})

	s.Run("unknown", func() {
		s.sessions.EXPECT().FindByID(gomock.Any(), sessionID).Return(nil, sentinel.ErrNotFound)
		active, err := s.service.SessionActive(s.ctx, sessionID)
		s.Require().NoError(err)
		s.False(active)
	})
}

func (s *ServiceSuite) TestRevokeSession() {
	sessionID := id.NewSessionID()

	s.sessions.EXPECT().Revoke(gomock.Any(), sessionID, s.now).Return(nil)
	s.Require().NoError(s.service.RevokeSession(s.ctx, sessionID))

	s.sessions.EXPECT().Revoke(gomock.Any(), sessionID, s.now).Return(sentinel.ErrNotFound)
	s.True(dErrors.HasCode(s.service.RevokeSession(s.ctx, sessionID), dErrors.CodeNotFound))
}
