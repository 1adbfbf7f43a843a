package peers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/models"
)

// StateFunc resolves the peer cache of the session behind a request.
type StateFunc func(c *fiber.Ctx) *State

// Handler exposes peer slices and actions over HTTP.
type Handler struct {
	svc   *Service
	state StateFunc
}

func NewHandler(svc *Service, state StateFunc) *Handler {
	return &Handler{svc: svc, state: state}
}

type peerRequest struct {
	PeerName     string             `json:"peer_name"`
	PeerAddress  models.PeerAddress `json:"peer_address"`
	Autoconnect  bool               `json:"autoconnect"`
	ShareForFree bool               `json:"share_for_free"`
}

func parse(c *fiber.Ctx) (peerRequest, error) {
	var req peerRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func peerID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid peer id")
	}
	return id, nil
}

func (h *Handler) Snapshot(c *fiber.Ctx) error {
	st := h.state(c)
	return c.JSON(fiber.Map{
		"current":   st.Current.Snapshot(),
		"connected": st.Connected.Snapshot(),
		"saved":     st.Saved.Snapshot(),
		"statuses": fiber.Map{
			"connect":    st.Connect.Status(),
			"disconnect": st.Disconnect.Status(),
			"save":       st.Save.Status(),
			"delete":     st.Remove.Status(),
		},
	})
}

// Connection answers with the live connection to the address in the query string.
func (h *Handler) Connection(c *fiber.Ctx) error {
	port, _ := strconv.Atoi(c.Query("port"))
	addr := models.PeerAddress{Network: c.Query("network"), Host: c.Query("host"), Port: port}
	cp, ok := h.state(c).ConnectionByAddress(addr)
	if !ok {
		return fiber.NewError(http.StatusNotFound, "not connected to "+addr.String())
	}
	return c.JSON(cp)
}

func (h *Handler) FetchCurrent(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchPeer(c.UserContext(), st, req.PeerAddress); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) FetchByID(c *fiber.Ctx) error {
	id, err := peerID(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchPeerByID(c.UserContext(), st, id); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) ClearCurrent(c *fiber.Ctx) error {
	h.state(c).Current.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) FetchConnected(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.FetchConnected(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Connected.Snapshot())
}

func (h *Handler) FetchSaved(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.FetchSaved(c.UserContext(), st); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Saved.Snapshot())
}

func (h *Handler) Connect(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.Connect(c.UserContext(), st, req.PeerAddress); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Connected.Snapshot())
}

func (h *Handler) Disconnect(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.Disconnect(c.UserContext(), st, req.PeerAddress); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Connected.Snapshot())
}

func (h *Handler) Save(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	id, err := h.svc.Save(c.UserContext(), st, req.PeerName, req.PeerAddress)
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"peer_id": id, "current": st.Current.Snapshot()})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := peerID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), h.state(c), id); err != nil {
		return apierror.From(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) Rename(c *fiber.Ctx) error {
	id, err := peerID(c)
	if err != nil {
		return err
	}
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.Rename(c.UserContext(), st, id, req.PeerName); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) SetAutoconnect(c *fiber.Ctx) error {
	id, err := peerID(c)
	if err != nil {
		return err
	}
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.SetAutoconnect(c.UserContext(), st, id, req.Autoconnect); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) SetShareForFree(c *fiber.Ctx) error {
	id, err := peerID(c)
	if err != nil {
		return err
	}
	req, err := parse(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.SetShareForFree(c.UserContext(), st, id, req.ShareForFree); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}
