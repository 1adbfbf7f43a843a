package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/squeaks"
)

// RegisterSqueakRoutes wires squeak slices, offers and downloads.
func RegisterSqueakRoutes(r fiber.Router, h *squeaks.Handler) {
	g := r.Group("/squeaks")
	g.Get("/", h.Snapshot)
	g.Post("/", h.Make)
	g.Post("/resqueak", h.Resqueak)

	g.Get("/current", h.Current)
	g.Delete("/current", h.ClearCurrent)
	g.Post("/current/fetch", h.FetchCurrent)

	g.Get("/lists/:name", h.List)
	g.Delete("/lists/:name", h.ClearList)
	g.Post("/ancestors/fetch", h.FetchAncestors)
	g.Post("/replies/fetch", h.FetchReplies)
	g.Post("/timeline/fetch", h.FetchTimeline)
	g.Post("/search/fetch", h.FetchSearch)
	g.Post("/profile/fetch", h.FetchProfile)
	g.Post("/liked/fetch", h.FetchLiked)

	g.Get("/offers", h.Offers)
	g.Delete("/offers", h.ClearOffers)
	g.Post("/offers/:offerID/buy", h.Buy)

	g.Post("/pubkeys/:pubkey/download", h.DownloadPubkeySqueaks)

	g.Post("/:hash/like", h.Like)
	g.Post("/:hash/unlike", h.Unlike)
	g.Post("/:hash/decrypt", h.Decrypt)
	g.Post("/:hash/offers/fetch", h.FetchOffers)
	g.Post("/:hash/download", h.Download)
	g.Post("/:hash/download/secret-key", h.DownloadSecretKey)
	g.Post("/:hash/download/offers", h.DownloadOffers)
	g.Post("/:hash/download/replies", h.DownloadReplies)
	g.Delete("/:hash", h.Delete)
}
