package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/network"
	"github.com/squeaknode/squeakweb/internal/sellprice"
	"github.com/squeaknode/squeakweb/internal/twitter"
)

func RegisterSellPriceRoutes(r fiber.Router, h *sellprice.Handler) {
	r.Get("/sell-price", h.Get)
	r.Post("/sell-price/fetch", h.Fetch)
	r.Put("/sell-price", h.Set)
	r.Delete("/sell-price", h.Clear)
}

func RegisterNetworkRoutes(r fiber.Router, h *network.Handler) {
	r.Get("/network", h.Snapshot)
	r.Post("/network/fetch", h.Fetch)
}

func RegisterTwitterRoutes(r fiber.Router, h *twitter.Handler) {
	r.Get("/twitter", h.Snapshot)
	r.Post("/twitter/fetch", h.Fetch)
	r.Post("/twitter/accounts", h.Create)
	r.Delete("/twitter/accounts/:id", h.Delete)
}
