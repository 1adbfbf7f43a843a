package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/payments"
)

// RegisterPaymentRoutes wires payment history and summary endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler) {
	g := r.Group("/payments")
	g.Get("/", h.Snapshot)
	g.Post("/summary/fetch", h.FetchSummary)
	g.Post("/sent/fetch", h.FetchSent)
	g.Delete("/sent", h.ClearSent)
	g.Post("/received/fetch", h.FetchReceived)
	g.Delete("/received", h.ClearReceived)
	g.Post("/received/reprocess", h.Reprocess)
}
