package squeaks

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/notification"
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/rpc/rpctest"
)

func newHandlerApp(t *testing.T) (*fiber.App, *rpctest.Gateway, *State) {
	t.Helper()
	gw := rpctest.New(t)
	st := NewState()
	h := NewHandler(NewService(gw.Client(t), &notification.Recorder{}), func(*fiber.Ctx) *State { return st })

	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler})
	app.Post("/squeaks", h.Make)
	app.Get("/squeaks/lists/:name", h.List)
	app.Post("/squeaks/replies/fetch", h.FetchReplies)
	app.Post("/squeaks/offers/:offerID/buy", h.Buy)
	app.Post("/squeaks/:hash/like", h.Like)
	return app, gw, st
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, out
}

func hashes(t *testing.T, snapshot map[string]any) []string {
	t.Helper()
	data, _ := snapshot["data"].([]any)
	out := make([]string, 0, len(data))
	for _, d := range data {
		m, _ := d.(map[string]any)
		h, _ := m["squeak_hash"].(string)
		out = append(out, h)
	}
	return out
}

func TestFetchRepliesMoreSendsCursorAndReplaces(t *testing.T) {
	app, gw, st := newHandlerApp(t)
	st.Replies.Replace([]models.Squeak{{SqueakHash: "r1"}, {SqueakHash: "r2"}})
	rpctest.Handle(gw, rpc.EndpointGetReplySqueaks, func(req rpc.SqueakPageRequest) (rpc.SqueaksReply, error) {
		if req.SqueakHash != "parent" {
			t.Errorf("unexpected parent %q", req.SqueakHash)
		}
		if req.LastEntry == nil {
			return rpc.SqueaksReply{Entries: []models.Squeak{{SqueakHash: "r1"}}}, nil
		}
		if req.LastEntry.SqueakHash != "r2" {
			t.Errorf("expected cursor r2, got %s", req.LastEntry.SqueakHash)
		}
		return rpc.SqueaksReply{Entries: []models.Squeak{{SqueakHash: "r3"}}}, nil
	})

	status, body := send(t, app, http.MethodPost, "/squeaks/replies/fetch", `{"squeak_hash":"parent","more":true,"limit":2}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	if got := hashes(t, body); len(got) != 1 || got[0] != "r3" {
		t.Fatalf("expected replies replaced by the next page, got %v", got)
	}

	var req rpc.SqueakPageRequest
	if err := gw.LastRequest(rpc.EndpointGetReplySqueaks, &req); err != nil {
		t.Fatalf("last request: %v", err)
	}
	if req.Limit != 2 {
		t.Fatalf("expected limit forwarded, got %d", req.Limit)
	}

	// Without more the first page is requested again.
	_, body = send(t, app, http.MethodPost, "/squeaks/replies/fetch", `{"squeak_hash":"parent"}`)
	if got := hashes(t, body); len(got) != 1 || got[0] != "r1" {
		t.Fatalf("expected first page, got %v", got)
	}
}

func TestFetchRepliesWithoutHashIsBadRequest(t *testing.T) {
	app, gw, _ := newHandlerApp(t)
	status, body := send(t, app, http.MethodPost, "/squeaks/replies/fetch", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
	if gw.Calls(rpc.EndpointGetReplySqueaks) != 0 {
		t.Fatalf("invalid input reached the gateway")
	}
}

func TestBuyParsesOfferID(t *testing.T) {
	app, gw, st := newHandlerApp(t)
	st.Offers.Replace([]models.Offer{{OfferID: 42, SqueakHash: "h"}})
	rpctest.Handle(gw, rpc.EndpointPayOffer, func(req rpc.OfferRequest) (rpc.PayOfferReply, error) {
		if req.OfferID != 42 {
			t.Errorf("unexpected offer id %d", req.OfferID)
		}
		return rpc.PayOfferReply{SentPaymentID: 7}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetSqueak, func(req rpc.SqueakHashRequest) (rpc.SqueakReply, error) {
		return rpc.SqueakReply{Entry: &models.Squeak{SqueakHash: req.SqueakHash, IsUnlocked: true}}, nil
	})

	if status, _ := send(t, app, http.MethodPost, "/squeaks/offers/not-a-number/buy", ""); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad offer id, got %d", status)
	}
	if gw.Calls(rpc.EndpointPayOffer) != 0 {
		t.Fatalf("bad offer id reached the gateway")
	}

	status, body := send(t, app, http.MethodPost, "/squeaks/offers/42/buy", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	if body["sent_payment_id"] != float64(7) {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMakeValidationAndGatewayErrors(t *testing.T) {
	app, gw, _ := newHandlerApp(t)

	status, body := send(t, app, http.MethodPost, "/squeaks", `{"content":"hello"}`)
	if status != http.StatusBadRequest || body["error"] != "profile_id is required" {
		t.Fatalf("expected 400 profile_id is required, got %d %v", status, body)
	}

	gw.Fail(rpc.EndpointMakeSqueak, http.StatusInternalServerError, "profile has no private key")
	status, body = send(t, app, http.MethodPost, "/squeaks", `{"profile_id":3,"content":"hello"}`)
	if status != http.StatusBadGateway || body["error"] != "profile has no private key" {
		t.Fatalf("expected 502 with gateway text, got %d %v", status, body)
	}
}

func TestLikeGatewayFailureKeepsCurrent(t *testing.T) {
	app, gw, st := newHandlerApp(t)
	st.Current.Set(&models.Squeak{SqueakHash: "h"})
	gw.Fail(rpc.EndpointLikeSqueak, http.StatusBadRequest, "squeak not found")

	status, body := send(t, app, http.MethodPost, "/squeaks/h/like", "")
	if status != http.StatusBadGateway || body["error"] != "squeak not found" {
		t.Fatalf("expected 502, got %d %v", status, body)
	}
	if cur := st.Current.Get(); cur == nil || cur.IsLiked() {
		t.Fatalf("expected current squeak untouched, got %+v", cur)
	}
}

func TestUnknownListIsNotFound(t *testing.T) {
	app, _, _ := newHandlerApp(t)
	if status, _ := send(t, app, http.MethodGet, "/squeaks/lists/bogus", ""); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if status, _ := send(t, app, http.MethodGet, "/squeaks/lists/timeline", ""); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}
