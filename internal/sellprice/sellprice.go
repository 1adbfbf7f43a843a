// Package sellprice caches the price this node asks for its squeaks.
package sellprice

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
)

// Gateway is the part of the admin gateway the sell price slice uses.
type Gateway interface {
	GetSellPrice(ctx context.Context) (models.SellPrice, error)
	SetSellPrice(ctx context.Context, priceMsat int64) error
	ClearSellPrice(ctx context.Context) error
}

// State is one session's sell price cache.
type State struct {
	Price cache.Item[models.SellPrice]
}

func NewState() *State {
	return &State{}
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) Fetch(ctx context.Context, st *State) error {
	st.Price.Begin()
	p, err := s.gw.GetSellPrice(ctx)
	if err != nil {
		st.Price.Fail()
		return err
	}
	st.Price.Set(&p)
	return nil
}

// Set changes the price and reloads it.
func (s *Service) Set(ctx context.Context, st *State, priceMsat int64) error {
	if priceMsat < 0 {
		return apierror.Invalid("price_msat must not be negative")
	}
	if err := s.gw.SetSellPrice(ctx, priceMsat); err != nil {
		return err
	}
	return s.Fetch(ctx, st)
}

// Clear reverts to the node's default price and reloads it.
func (s *Service) Clear(ctx context.Context, st *State) error {
	if err := s.gw.ClearSellPrice(ctx); err != nil {
		return err
	}
	return s.Fetch(ctx, st)
}

// StateFunc resolves the sell price cache of the session behind a request.
type StateFunc func(c *fiber.Ctx) *State

type Handler struct {
	svc   *Service
	state StateFunc
}

func NewHandler(svc *Service, state StateFunc) *Handler {
	return &Handler{svc: svc, state: state}
}

func (h *Handler) Get(c *fiber.Ctx) error {
	return c.JSON(h.state(c).Price.Snapshot())
}

func (h *Handler) Fetch(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.Fetch(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Price.Snapshot())
}

func (h *Handler) Set(c *fiber.Ctx) error {
	var req struct {
		PriceMsat int64 `json:"price_msat"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st := h.state(c)
	if err := h.svc.Set(c.UserContext(), st, req.PriceMsat); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Price.Snapshot())
}

func (h *Handler) Clear(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.Clear(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Price.Snapshot())
}
