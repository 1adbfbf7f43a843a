package profiles

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
)

// StateFunc resolves the profile cache of the session behind a request.
type StateFunc func(c *fiber.Ctx) *State

// Handler exposes profile slices and actions over HTTP.
type Handler struct {
	svc   *Service
	state StateFunc
}

func NewHandler(svc *Service, state StateFunc) *Handler {
	return &Handler{svc: svc, state: state}
}

type profileRequest struct {
	ProfileName  string `json:"profile_name"`
	Pubkey       string `json:"pubkey"`
	PrivateKey   string `json:"private_key"`
	ProfileImage string `json:"profile_image"`
}

func profileID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid profile id")
	}
	return id, nil
}

func (h *Handler) Snapshot(c *fiber.Ctx) error {
	st := h.state(c)
	return c.JSON(fiber.Map{
		"current":  st.Current.Snapshot(),
		"signing":  st.Signing.Snapshot(),
		"contacts": st.Contacts.Snapshot(),
		"all":      st.All.Snapshot(),
		"statuses": fiber.Map{
			"create_contact": st.CreateContact.Status(),
			"create_signing": st.CreateSigning.Status(),
			"import_signing": st.ImportSigning.Status(),
			"export_key":     st.ExportKey.Status(),
		},
	})
}

func (h *Handler) FetchSigning(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.FetchSigning(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Signing.Snapshot())
}

func (h *Handler) FetchContacts(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.FetchContacts(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Contacts.Snapshot())
}

func (h *Handler) FetchAll(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.FetchAll(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.All.Snapshot())
}

func (h *Handler) FetchCurrent(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st := h.state(c)
	if err := h.svc.FetchByPubkey(c.UserContext(), st, req.Pubkey); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) ClearCurrent(c *fiber.Ctx) error {
	h.state(c).Current.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) Follow(c *fiber.Ctx) error {
	return h.byID(c, h.svc.Follow)
}

func (h *Handler) Unfollow(c *fiber.Ctx) error {
	return h.byID(c, h.svc.Unfollow)
}

func (h *Handler) ClearImage(c *fiber.Ctx) error {
	return h.byID(c, h.svc.ClearImage)
}

func (h *Handler) byID(c *fiber.Ctx, action func(ctx context.Context, st *State, id int64) error) error {
	id, err := profileID(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := action(c.UserContext(), st, id); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) Rename(c *fiber.Ctx) error {
	id, err := profileID(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st := h.state(c)
	if err := h.svc.Rename(c.UserContext(), st, id, req.ProfileName); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) SetImage(c *fiber.Ctx) error {
	id, err := profileID(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	st := h.state(c)
	if err := h.svc.SetImage(c.UserContext(), st, id, req.ProfileImage); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := profileID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), h.state(c), id); err != nil {
		return apierror.From(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) CreateContact(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	pubkey, err := h.svc.CreateContact(c.UserContext(), h.state(c), req.ProfileName, req.Pubkey)
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"pubkey": pubkey})
}

func (h *Handler) CreateSigning(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	pubkey, err := h.svc.CreateSigning(c.UserContext(), h.state(c), req.ProfileName)
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"pubkey": pubkey})
}

func (h *Handler) ImportSigning(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	pubkey, err := h.svc.ImportSigning(c.UserContext(), h.state(c), req.ProfileName, req.PrivateKey)
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"pubkey": pubkey})
}

// PrivateKey exports the private key of a signing profile.
func (h *Handler) PrivateKey(c *fiber.Ctx) error {
	id, err := profileID(c)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	key, err := h.svc.PrivateKey(c.UserContext(), h.state(c), id)
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(fiber.Map{"private_key": key})
}
