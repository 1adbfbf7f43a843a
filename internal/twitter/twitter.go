// Package twitter caches the twitter accounts whose tweets the node forwards
// as squeaks.
package twitter

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/rpc"
)

type Gateway interface {
	GetTwitterAccounts(ctx context.Context) ([]models.TwitterAccount, error)
	AddTwitterAccount(ctx context.Context, req rpc.AddTwitterAccountRequest) (int64, error)
	DeleteTwitterAccount(ctx context.Context, id int64) error
}

// State is one session's twitter cache.
type State struct {
	Accounts cache.List[models.TwitterAccount]
	Create   cache.Flag
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
	st.Accounts.Begin()
	items, err := s.gw.GetTwitterAccounts(ctx)
	if err != nil {
		st.Accounts.Fail()
		return err
	}
	st.Accounts.Replace(items)
	return nil
}

// CreateInput names the handle to forward, the signing profile that signs the
// squeaks and the API bearer token used to read the stream.
type CreateInput struct {
	Handle      string
	ProfileID   int64
	BearerToken string
}

// Create adds a forwarding account and reloads the list.
func (s *Service) Create(ctx context.Context, st *State, in CreateInput) (int64, error) {
	if in.Handle == "" {
		return 0, apierror.Invalid("handle is required")
	}
	if in.ProfileID == 0 {
		return 0, apierror.Invalid("profile_id is required")
	}
	if in.BearerToken == "" {
		return 0, apierror.Invalid("bearer_token is required")
	}
	st.Create.Begin()
	defer st.Create.End()
	id, err := s.gw.AddTwitterAccount(ctx, rpc.AddTwitterAccountRequest{
		Handle:      in.Handle,
		ProfileID:   in.ProfileID,
		BearerToken: in.BearerToken,
	})
	if err != nil {
		return 0, err
	}
	return id, s.Fetch(ctx, st)
}

// Delete removes a forwarding account and reloads the list.
func (s *Service) Delete(ctx context.Context, st *State, id int64) error {
	if id == 0 {
		return apierror.Invalid("twitter_account_id is required")
	}
	if err := s.gw.DeleteTwitterAccount(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx, st)
}

// StateFunc resolves the twitter cache of the session behind a request.
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
		"accounts": st.Accounts.Snapshot(),
		"create":   st.Create.Status(),
	})
}

func (h *Handler) Fetch(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.Fetch(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Accounts.Snapshot())
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req struct {
		Handle      string `json:"handle"`
		ProfileID   int64  `json:"profile_id"`
		BearerToken string `json:"bearer_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st := h.state(c)
	id, err := h.svc.Create(c.UserContext(), st, CreateInput{Handle: req.Handle, ProfileID: req.ProfileID, BearerToken: req.BearerToken})
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"twitter_account_id": id})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid twitter account id")
	}
	if err := h.svc.Delete(c.UserContext(), h.state(c), id); err != nil {
		return apierror.From(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
