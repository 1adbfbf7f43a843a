// Package identity stores the users allowed to log into the web API.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/squeaknode/squeakweb/internal/apierror"
)

const minPasswordLength = 8

// Service manages identity lifecycle.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func validate(creds Credentials) error {
	if strings.TrimSpace(creds.Username) == "" {
		return apierror.Invalid("username is required")
	}
	if len(creds.Password) < minPasswordLength {
		return apierror.Invalid("password must be at least 8 characters")
	}
	return nil
}

// Register creates a new user and stores a hashed password.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if err := validate(creds); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(creds.Username),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// EnsureAdmin makes sure the configured admin account exists and accepts the
// configured password. A changed password in the environment replaces the
// stored hash.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return s.Register(ctx, Credentials{Username: username, Password: password})
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) == nil {
		return user, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return User{}, err
	}
	user.PasswordHash = hash
	return user, nil
}

// Authenticate verifies credentials and records the login time. Unknown users
// and wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(creds.Username))
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.repo.TouchLogin(ctx, user.ID, now); err != nil {
		return User{}, err
	}
	user.LastLogin = &now

	return user, nil
}
