package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"licensing/internal/sentinel"
	"licensing/internal/user/models"
	id "licensing/pkg/domain"
)

func newSession(now time.Time) *models.Session {
	return &models.Session{
		ID:            id.NewSessionID(),
		WalletAddress: "0x8617e340b3d01fa5f11f306f4090fd50e238070d",
		ChainID:       1,
		Nonce:         "n0nce",
		Payload:       map[string]any{"statement": "sign in"},
		CreatedAt:     now,
		ExpiresAt:     now.Add(time.Hour),
	}
}

type InMemorySessionStoreSuite struct {
	suite.Suite
	store *InMemorySessionStore
	now   time.Time
}

func TestInMemorySessionStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemorySessionStoreSuite))
}

func (s *InMemorySessionStoreSuite) SetupTest() {
	s.store = New()
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemorySessionStoreSuite) TestCreateAndFind() {
	session := newSession(s.now)
	s.Require().NoError(s.store.Create(context.Background(), session))

	found, err := s.store.FindByID(context.Background(), session.ID)
	s.Require().NoError(err)
	s.Equal(session, found)

	found.Payload["statement"] = "mutated"
	again, err := s.store.FindByID(context.Background(), session.ID)
	s.Require().NoError(err)
	s.Equal("sign in", again.Payload["statement"])
}

func (s *InMemorySessionStoreSuite) TestCreateDuplicate() {
	session := newSession(s.now)
	s.Require().NoError(s.store.Create(context.Background(), session))
	s.ErrorIs(s.store.Create(context.Background(), session), sentinel.ErrAlreadyExists)
}

func (s *InMemorySessionStoreSuite) TestRevoke() {
	session := newSession(s.now)
	s.Require().NoError(s.store.Create(context.Background(), session))

	s.Require().NoError(s.store.Revoke(context.Background(), session.ID, s.now))
	s.Require().NoError(s.store.Revoke(context.Background(), session.ID, s.now.Add(time.Minute)))

	found, err := s.store.FindByID(context.Background(), session.ID)
	s.Require().NoError(err)
	s.False(found.IsActive(s.now))
	s.Equal(s.now, *found.RevokedAt)
}

func (s *InMemorySessionStoreSuite) TestNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewSessionID())
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Revoke(context.Background(), id.NewSessionID(), s.now), sentinel.ErrNotFound)
}
