package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/identity"
)

// CookieName is the cookie that carries the session token for browsers.
const CookieName = "squeakweb_session"

// Handler exposes auth endpoints for login/logout/me.
type Handler struct {
	svc    *Service
	secure bool
}

// NewHandler builds the auth handler. secure marks the session cookie Secure.
func NewHandler(svc *Service, secure bool) *Handler {
	return &Handler{svc: svc, secure: secure}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login validates credentials, returns a token and sets the session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Login(c.UserContext(), identity.Credentials{Username: req.Username, Password: req.Password})
	if errors.Is(err, identity.ErrInvalidCredentials) {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.Status(http.StatusOK).JSON(loginResponse{
		UserID:      sess.User.ID,
		Username:    sess.User.Username,
		AccessToken: sess.Token,
		ExpiresIn:   int64(time.Until(sess.ExpiresAt).Seconds()),
	})
}

// Logout invalidates existing tokens and clears the session cookie.
func (h *Handler) Logout(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	if err := h.svc.Logout(c.UserContext(), uid); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	c.ClearCookie(CookieName)
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

// Me reports who the session belongs to.
func (h *Handler) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return c.SendStatus(http.StatusUnauthorized)
	}
	user, err := h.svc.repo.FindByID(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "user not found")
	}
	return c.JSON(fiber.Map{
		"user_id":    user.ID,
		"username":   user.Username,
		"session_id": c.Locals("session_id"),
		"created_at": user.CreatedAt,
		"last_login": user.LastLogin,
	})
}
