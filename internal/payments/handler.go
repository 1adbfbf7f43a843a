package payments

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/models"
)

// StateFunc resolves the payment cache of the session behind a request.
type StateFunc func(c *fiber.Ctx) *State

// Handler exposes payment slices over HTTP.
type Handler struct {
	svc   *Service
	state StateFunc
}

// NewHandler constructs a payments HTTP handler.
func NewHandler(svc *Service, state StateFunc) *Handler {
	return &Handler{svc: svc, state: state}
}

type queryRequest struct {
	SqueakHash  string              `json:"squeak_hash"`
	Pubkey      string              `json:"pubkey"`
	PeerAddress *models.PeerAddress `json:"peer_address"`
	Limit       int                 `json:"limit"`
	More        bool                `json:"more"`
}

func (r queryRequest) filter() Filter {
	return Filter{SqueakHash: r.SqueakHash, Pubkey: r.Pubkey, PeerAddress: r.PeerAddress}
}

func parse(c *fiber.Ctx) (queryRequest, error) {
	var req queryRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func (h *Handler) Snapshot(c *fiber.Ctx) error {
	st := h.state(c)
	return c.JSON(fiber.Map{
		"sent":     st.Sent.Snapshot(),
		"received": st.Received.Snapshot(),
		"summaries": fiber.Map{
			"all":    st.Summary.Snapshot(),
			"squeak": st.SqueakSummary.Snapshot(),
			"pubkey": st.PubkeySummary.Snapshot(),
			"peer":   st.PeerSummary.Snapshot(),
		},
		"reprocess": st.ReprocessRunning.Status(),
	})
}

func (h *Handler) FetchSummary(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchSummary(c.UserContext(), st, req.filter()); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.summary(req.filter()).Snapshot())
}

func (h *Handler) FetchSent(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchSent(c.UserContext(), st, req.filter(), Page{Limit: req.Limit, More: req.More}); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Sent.Snapshot())
}

func (h *Handler) FetchReceived(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchReceived(c.UserContext(), st, req.filter(), Page{Limit: req.Limit, More: req.More}); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Received.Snapshot())
}

func (h *Handler) ClearSent(c *fiber.Ctx) error {
	h.state(c).Sent.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) ClearReceived(c *fiber.Ctx) error {
	h.state(c).Received.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) Reprocess(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.ReprocessReceived(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Summary.Snapshot())
}
