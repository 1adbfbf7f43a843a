package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/profiles"
)

// RegisterProfileRoutes wires signing and contact profile endpoints.
func RegisterProfileRoutes(r fiber.Router, h *profiles.Handler) {
	g := r.Group("/profiles")
	g.Get("/", h.Snapshot)
	g.Post("/signing/fetch", h.FetchSigning)
	g.Post("/contacts/fetch", h.FetchContacts)
	g.Post("/all/fetch", h.FetchAll)
	g.Post("/current/fetch", h.FetchCurrent)
	g.Delete("/current", h.ClearCurrent)

	g.Post("/contacts", h.CreateContact)
	g.Post("/signing", h.CreateSigning)
	g.Post("/signing/import", h.ImportSigning)

	g.Post("/:id/follow", h.Follow)
	g.Post("/:id/unfollow", h.Unfollow)
	g.Post("/:id/rename", h.Rename)
	g.Post("/:id/image", h.SetImage)
	g.Delete("/:id/image", h.ClearImage)
	g.Get("/:id/private-key", h.PrivateKey)
	g.Delete("/:id", h.Delete)
}
