package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/auth"
)

// RegisterAuthRoutes wires the public authentication endpoints. register is
// nil unless self sign-up is enabled.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler, register fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	if register != nil {
		group.Post("/register", register)
	}
}

// RegisterSessionRoutes wires endpoints that need a logged-in session.
func RegisterSessionRoutes(r fiber.Router, h *auth.Handler) {
	r.Get("/me", h.Me)
	r.Post("/auth/logout", h.Logout)
}
