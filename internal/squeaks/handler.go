package squeaks

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/models"
)

// StateFunc resolves the squeak cache of the session behind a request.
type StateFunc func(c *fiber.Ctx) *State

// Handler exposes squeak slices and actions over HTTP.
type Handler struct {
	svc   *Service
	state StateFunc
}

// NewHandler constructs a squeak HTTP handler.
func NewHandler(svc *Service, state StateFunc) *Handler {
	return &Handler{svc: svc, state: state}
}

type pageRequest struct {
	Limit      int    `json:"limit"`
	More       bool   `json:"more"`
	SqueakHash string `json:"squeak_hash"`
	Pubkey     string `json:"pubkey"`
	SearchText string `json:"search_text"`
}

func (r pageRequest) page() Page {
	return Page{Limit: r.Limit, More: r.More}
}

func parsePage(c *fiber.Ctx) (pageRequest, error) {
	var req pageRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

// Snapshot returns every squeak slice of the session.
func (h *Handler) Snapshot(c *fiber.Ctx) error {
	st := h.state(c)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"current":   st.Current.Snapshot(),
		"ancestors": st.Ancestors.Snapshot(),
		"replies":   st.Replies.Snapshot(),
		"timeline":  st.Timeline.Snapshot(),
		"search":    st.Search.Snapshot(),
		"profile":   st.Profile.Snapshot(),
		"liked":     st.Liked.Snapshot(),
		"offers":    st.Offers.Snapshot(),
		"statuses":  st.Statuses(),
	})
}

func (h *Handler) Current(c *fiber.Ctx) error {
	return c.JSON(h.state(c).Current.Snapshot())
}

func (h *Handler) ClearCurrent(c *fiber.Ctx) error {
	h.state(c).Current.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) List(c *fiber.Ctx) error {
	l, ok := h.state(c).List(c.Params("name"))
	if !ok {
		return fiber.NewError(http.StatusNotFound, "unknown squeak list "+c.Params("name"))
	}
	return c.JSON(l.Snapshot())
}

func (h *Handler) ClearList(c *fiber.Ctx) error {
	l, ok := h.state(c).List(c.Params("name"))
	if !ok {
		return fiber.NewError(http.StatusNotFound, "unknown squeak list "+c.Params("name"))
	}
	l.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) FetchCurrent(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchSqueak(c.UserContext(), st, req.SqueakHash); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) FetchAncestors(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchAncestors(c.UserContext(), st, req.SqueakHash); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Ancestors.Snapshot())
}

func (h *Handler) FetchReplies(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	var cursor *models.Squeak
	if req.More {
		cursor = st.Replies.Last()
	}
	if err := h.svc.FetchReplies(c.UserContext(), st, req.SqueakHash, req.Limit, cursor); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Replies.Snapshot())
}

func (h *Handler) FetchTimeline(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchTimeline(c.UserContext(), st, req.page()); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Timeline.Snapshot())
}

func (h *Handler) FetchSearch(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchSearch(c.UserContext(), st, req.SearchText, req.page()); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Search.Snapshot())
}

func (h *Handler) FetchProfile(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchProfileSqueaks(c.UserContext(), st, req.Pubkey, req.page()); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Profile.Snapshot())
}

func (h *Handler) FetchLiked(c *fiber.Ctx) error {
	req, err := parsePage(c)
	if err != nil {
		return err
	}
	st := h.state(c)
	if err := h.svc.FetchLiked(c.UserContext(), st, req.page()); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Liked.Snapshot())
}

func (h *Handler) Like(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.Like(c.UserContext(), st, c.Params("hash")); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) Unlike(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.Unlike(c.UserContext(), st, c.Params("hash")); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) Decrypt(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.Decrypt(c.UserContext(), st, c.Params("hash")); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Current.Snapshot())
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), h.state(c), c.Params("hash")); err != nil {
		return apierror.From(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type makeSqueakRequest struct {
	ProfileID          int64  `json:"profile_id"`
	Content            string `json:"content"`
	ReplyTo            string `json:"replyto"`
	HasRecipient       bool   `json:"has_recipient"`
	RecipientProfileID int64  `json:"recipient_profile_id"`
}

// Make signs a new squeak and answers with its hash.
func (h *Handler) Make(c *fiber.Ctx) error {
	var req makeSqueakRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	hash, err := h.svc.MakeSqueak(c.UserContext(), h.state(c), MakeSqueakInput{
		ProfileID:          req.ProfileID,
		Content:            req.Content,
		ReplyTo:            req.ReplyTo,
		HasRecipient:       req.HasRecipient,
		RecipientProfileID: req.RecipientProfileID,
	})
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"squeak_hash": hash})
}

type resqueakRequest struct {
	ProfileID      int64  `json:"profile_id"`
	ResqueakedHash string `json:"resqueaked_hash"`
	ReplyTo        string `json:"replyto"`
}

func (h *Handler) Resqueak(c *fiber.Ctx) error {
	var req resqueakRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	hash, err := h.svc.MakeResqueak(c.UserContext(), h.state(c), req.ProfileID, req.ResqueakedHash, req.ReplyTo)
	if err != nil {
		return apierror.From(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"squeak_hash": hash})
}

func (h *Handler) Offers(c *fiber.Ctx) error {
	return c.JSON(h.state(c).Offers.Snapshot())
}

func (h *Handler) ClearOffers(c *fiber.Ctx) error {
	h.state(c).Offers.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) FetchOffers(c *fiber.Ctx) error {
	st := h.state(c)
	if err := h.svc.FetchOffers(c.UserContext(), st, c.Params("hash")); err != nil {
		return apierror.From(err)
	}
	return c.JSON(st.Offers.Snapshot())
}

type buyRequest struct {
	SqueakHash string `json:"squeak_hash"`
}

// Buy pays for an offer. The body is optional.
func (h *Handler) Buy(c *fiber.Ctx) error {
	offerID, err := strconv.ParseInt(c.Params("offerID"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid offer id")
	}
	var req buyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	st := h.state(c)
	paymentID, err := h.svc.BuyOffer(c.UserContext(), st, offerID, req.SqueakHash)
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(fiber.Map{"sent_payment_id": paymentID, "current": st.Current.Snapshot()})
}

func (h *Handler) Download(c *fiber.Ctx) error {
	res, err := h.svc.DownloadSqueak(c.UserContext(), h.state(c), c.Params("hash"))
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(res)
}

func (h *Handler) DownloadSecretKey(c *fiber.Ctx) error {
	res, err := h.svc.DownloadSecretKey(c.UserContext(), h.state(c), c.Params("hash"))
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(res)
}

func (h *Handler) DownloadOffers(c *fiber.Ctx) error {
	res, err := h.svc.DownloadOffers(c.UserContext(), h.state(c), c.Params("hash"))
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(res)
}

func (h *Handler) DownloadReplies(c *fiber.Ctx) error {
	res, err := h.svc.DownloadReplies(c.UserContext(), h.state(c), c.Params("hash"))
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(res)
}

func (h *Handler) DownloadPubkeySqueaks(c *fiber.Ctx) error {
	res, err := h.svc.DownloadPubkeySqueaks(c.UserContext(), h.state(c), c.Params("pubkey"))
	if err != nil {
		return apierror.From(err)
	}
	return c.JSON(res)
}
