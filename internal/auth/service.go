// Package auth issues session tokens to identity users and ends sessions.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/squeaknode/squeakweb/internal/identity"
	"github.com/squeaknode/squeakweb/internal/logging"
)

var ErrSessionInvalidated = errors.New("session invalidated")

// Gateway ends the gateway side of a session.
type Gateway interface {
	Logout(ctx context.Context) error
}

// Session is what a successful login hands back to the browser.
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
	User      identity.User
}

type Service struct {
	ids    *identity.Service
	repo   identity.Repository
	tokens *Tokens
	gw     Gateway
	logger *slog.Logger

	// forget discards whatever the app keeps for a user's sessions.
	forget func(userID string)
}

// NewService wires login and logout. forget is called with the user id on logout.
func NewService(ids *identity.Service, repo identity.Repository, tokens *Tokens, gw Gateway, forget func(string), logger *slog.Logger) *Service {
	if forget == nil {
		forget = func(string) {}
	}
	return &Service{ids: ids, repo: repo, tokens: tokens, gw: gw, forget: forget, logger: logger}
}

// Login validates credentials (by delegating to identity.Service) and issues a session token.
func (s *Service) Login(ctx context.Context, creds identity.Credentials) (Session, error) {
	user, err := s.ids.Authenticate(ctx, creds)
	if err != nil {
		return Session{}, err
	}
	token, claims, err := s.tokens.Issue(user.ID, user.Username, user.TokenVersion)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ID: claims.SessionID(), ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Verify checks a token and that its version still matches the user's.
func (s *Service) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user.TokenVersion != claims.Version {
		return nil, ErrSessionInvalidated
	}
	return claims, nil
}

// Logout increments the token version so every token of the user becomes
// invalid, drops the cached slices of all those sessions and ends the gateway
// session.
func (s *Service) Logout(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateTokenVersion(ctx, user.ID, user.TokenVersion+1); err != nil {
		return err
	}
	s.forget(user.ID)
	if s.gw != nil {
		if err := s.gw.Logout(ctx); err != nil {
			logging.FromContext(ctx, s.logger).Warn("gateway logout failed", slog.Any("error", err))
		}
	}
	return nil
}
