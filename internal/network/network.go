// Package network caches what the node reports about itself: the bitcoin
// network it runs on, its external address and its default peer port.
package network

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
)

type Gateway interface {
	GetNetwork(ctx context.Context) (string, error)
	GetExternalAddress(ctx context.Context) (models.PeerAddress, error)
	GetDefaultPeerPort(ctx context.Context) (int, error)
}

// State is one session's node info cache.
type State struct {
	Network         cache.Item[string]
	ExternalAddress cache.Item[models.PeerAddress]
	DefaultPeerPort cache.Item[int]
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

func fetch[T any](ctx context.Context, it *cache.Item[T], get func(context.Context) (T, error)) error {
	it.Begin()
	v, err := get(ctx)
	if err != nil {
		it.Fail()
		return err
	}
	it.Set(&v)
	return nil
}

func (s *Service) FetchNetwork(ctx context.Context, st *State) error {
	return fetch(ctx, &st.Network, s.gw.GetNetwork)
}

func (s *Service) FetchExternalAddress(ctx context.Context, st *State) error {
	return fetch(ctx, &st.ExternalAddress, s.gw.GetExternalAddress)
}

func (s *Service) FetchDefaultPeerPort(ctx context.Context, st *State) error {
	return fetch(ctx, &st.DefaultPeerPort, s.gw.GetDefaultPeerPort)
}

// StateFunc resolves the node info cache of the session behind a request.
type StateFunc func(c *fiber.Ctx) *State

type Handler struct {
	svc   *Service
	state StateFunc
}

func NewHandler(svc *Service, state StateFunc) *Handler {
	return &Handler{svc: svc, state: state}
}

func (h *Handler) Snapshot(c *fiber.Ctx) error {
	st := h.state(c)
	return c.JSON(fiber.Map{
		"network":           st.Network.Snapshot(),
		"external_address":  st.ExternalAddress.Snapshot(),
		"default_peer_port": st.DefaultPeerPort.Snapshot(),
	})
}

// Fetch reloads all three values. It stops at the first failure.
func (h *Handler) Fetch(c *fiber.Ctx) error {
	st := h.state(c)
	ctx := c.UserContext()
	for _, f := range []func(context.Context, *State) error{
		h.svc.FetchNetwork,
		h.svc.FetchExternalAddress,
		h.svc.FetchDefaultPeerPort,
	} {
		if err := f(ctx, st); err != nil {
			return apierror.From(err)
		}
	}
	return h.Snapshot(c)
}
