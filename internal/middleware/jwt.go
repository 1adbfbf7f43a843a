package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/auth"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/logging"
)

// Locals keys set by SessionAuth.
const (
	LocalUserID    = "user_id"
	LocalUsername  = "username"
	LocalSessionID = "session_id"
	LocalExpiresAt = "session_expires_at"
)

// SessionVerifier checks a session token.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// SessionAuth accepts a bearer token or the session cookie and rejects the
// request unless the token is valid and its version still current.
func SessionAuth(verifier SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.CookieName)
		if authz := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			token = strings.TrimSpace(authz[len("Bearer "):])
		}
		if token == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing session token")
		}
		claims, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "session invalid")
		}

		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalSessionID, claims.SessionID())
		if claims.ExpiresAt != nil {
			c.Locals(LocalExpiresAt, claims.ExpiresAt.Time)
		}

		ctx := c.UserContext()
		logger := logging.FromContext(ctx, nil).With("session_id", claims.SessionID())
		c.SetUserContext(logging.IntoContext(ctx, logger))
		return c.Next()
	}
}

// SessionID returns the session id SessionAuth stored on c.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}

// SessionKey identifies the cached slices of the session SessionAuth accepted.
func SessionKey(c *fiber.Ctx) cache.SessionKey {
	owner, _ := c.Locals(LocalUserID).(string)
	expires, _ := c.Locals(LocalExpiresAt).(time.Time)
	return cache.SessionKey{ID: SessionID(c), Owner: owner, ExpiresAt: expires}
}
