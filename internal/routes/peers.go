package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/peers"
)

// RegisterPeerRoutes wires saved and connected peer endpoints.
func RegisterPeerRoutes(r fiber.Router, h *peers.Handler) {
	g := r.Group("/peers")
	g.Get("/", h.Snapshot)
	g.Post("/", h.Save)
	g.Get("/connection", h.Connection)
	g.Post("/current/fetch", h.FetchCurrent)
	g.Delete("/current", h.ClearCurrent)
	g.Post("/connected/fetch", h.FetchConnected)
	g.Post("/saved/fetch", h.FetchSaved)
	g.Post("/connect", h.Connect)
	g.Post("/disconnect", h.Disconnect)

	g.Post("/:id/fetch", h.FetchByID)
	g.Post("/:id/rename", h.Rename)
	g.Post("/:id/autoconnect", h.SetAutoconnect)
	g.Post("/:id/share-for-free", h.SetShareForFree)
	g.Delete("/:id", h.Delete)
}
