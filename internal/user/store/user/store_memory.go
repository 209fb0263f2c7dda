package user

import (
	"context"
	"fmt"
	"sync"

	"licensing/internal/sentinel"
	"licensing/internal/user/models"
	id "licensing/pkg/domain"
)

// InMemoryUserStore stores users in memory, keyed by wallet.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[id.Wallet]*models.User
}

// New constructs an empty in-memory user store.
func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[id.Wallet]*models.User)}
}

func (s *InMemoryUserStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.WalletAddress]; ok {
		return fmt.Errorf("user %s: %w", user.WalletAddress, sentinel.ErrAlreadyExists)
	}
	cp := *user
	s.users[user.WalletAddress] = &cp
	return nil
}

func (s *InMemoryUserStore) FindByWallet(_ context.Context, wallet id.Wallet) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[wallet]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) ExistsByWallet(_ context.Context, wallet id.Wallet) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[wallet]
	return ok, nil
}
