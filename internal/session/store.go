// Package session holds the signed-in identity of a single client.
//
// Identity is established from the email alone. No credential is checked;
// this must be replaced before the service faces untrusted callers.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cityworks/complaint-service/internal/domain"
	"github.com/cityworks/complaint-service/internal/repository"
)

// Store keeps the current identity and role. Both are set and cleared together.
type Store struct {
	users  repository.UserRepository
	logger *zap.Logger

	mu   sync.RWMutex
	user *domain.User
}

// NewStore builds an empty, signed-out session.
func NewStore(users repository.UserRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{users: users, logger: logger}
}

// Login signs in the user whose email matches identifier case-insensitively.
// On failure the session is left as it was.
func (s *Store) Login(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrIdentityNotFound
	}
	user, err := s.users.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("login identity not found", zap.String("identifier", identifier))
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info("session login", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	copied := *user
	return &copied, nil
}

// Resume attaches an identity that was already established elsewhere,
// such as a verified bearer token.
func (s *Store) Resume(user *domain.User) {
	if user == nil {
		s.Logout()
		return
	}
	copied := *user
	s.mu.Lock()
	s.user = &copied
	s.mu.Unlock()
}

// Logout clears identity and role.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// User returns a copy of the current identity, or nil when signed out.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Role returns the current role; ok is false when signed out.
func (s *Store) Role() (role domain.Role, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.user.Role, true
}

// Authenticated reports whether an identity is attached.
func (s *Store) Authenticated() bool {
	_, ok := s.Role()
	return ok
}
