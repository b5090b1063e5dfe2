package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cityworks/complaint-service/internal/auth"
	"github.com/cityworks/complaint-service/internal/config"
	"github.com/cityworks/complaint-service/internal/domain"
	"github.com/cityworks/complaint-service/internal/repository"
	"github.com/cityworks/complaint-service/internal/session"
)

// AuthService turns session logins into bearer tokens for HTTP clients.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	revoked  auth.RevocationList
	logger   *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationList
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    deps.UserRepo,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:  deps.Revocations,
		logger:   logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// NewSession returns a signed-out session backed by the user repository.
func (s *AuthService) NewSession() *session.Store {
	return session.NewStore(s.users, s.logger)
}

// Login signs sess in by email and issues a token for the resulting identity.
func (s *AuthService) Login(ctx context.Context, sess *session.Store, email string) (*domain.User, string, time.Time, error) {
	user, err := sess.Login(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		sess.Logout()
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout signs sess out and revokes its token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, sess *session.Store, token string, expiresAt time.Time) error {
	sess.Logout()
	if s.revoked == nil || token == "" {
		return nil
	}
	return s.revoked.Revoke(ctx, token, expiresAt)
}
