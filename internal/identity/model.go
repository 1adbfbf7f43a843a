package identity

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User is someone allowed to drive the node through the web API.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Credentials request structure.
type Credentials struct {
	Username string
	Password string
}
