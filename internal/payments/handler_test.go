package payments

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
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/rpc/rpctest"
)

func newHandlerApp(t *testing.T) (*fiber.App, *rpctest.Gateway, *State) {
	t.Helper()
	gw := rpctest.New(t)
	st := NewState()
	h := NewHandler(NewService(gw.Client(t)), func(*fiber.Ctx) *State { return st })

	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler})
	app.Post("/payments/summary/fetch", h.FetchSummary)
	app.Post("/payments/sent/fetch", h.FetchSent)
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

func TestSummaryFilterInBodySelectsEndpoint(t *testing.T) {
	app, gw, st := newHandlerApp(t)
	rpctest.Handle(gw, rpc.EndpointGetPaymentSummaryForPubkey, func(req rpc.PaymentsRequest) (rpc.SummaryReply, error) {
		if req.Pubkey != "pk1" {
			t.Errorf("unexpected pubkey %q", req.Pubkey)
		}
		return rpc.SummaryReply{Summary: models.PaymentSummary{NumSentPayments: 4, AmountSpentMsat: 4000}}, nil
	})

	status, body := send(t, app, http.MethodPost, "/payments/summary/fetch", `{"pubkey":"pk1"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["amount_spent_msat"] != float64(4000) {
		t.Fatalf("unexpected summary %v", body)
	}
	if gw.Calls(rpc.EndpointGetPaymentSummary) != 0 {
		t.Fatalf("expected the pubkey endpoint only")
	}
	if st.PubkeySummary.Get() == nil || st.Summary.Get() != nil {
		t.Fatalf("expected only the pubkey slot filled")
	}
}

func TestSentMoreSendsCursor(t *testing.T) {
	app, gw, st := newHandlerApp(t)
	st.Sent.Append([]models.SentPayment{{SentPaymentID: 11}})
	rpctest.Handle(gw, rpc.EndpointGetSentPaymentsForSqueak, func(req rpc.PaymentsRequest) (rpc.SentPaymentsReply, error) {
		if req.SqueakHash != "h" || req.Limit != 5 {
			t.Errorf("unexpected request %+v", req)
		}
		if req.LastSentPayment == nil || req.LastSentPayment.SentPaymentID != 11 {
			t.Errorf("expected cursor 11, got %+v", req.LastSentPayment)
		}
		return rpc.SentPaymentsReply{SentPayments: []models.SentPayment{{SentPaymentID: 10}}}, nil
	})

	status, body := send(t, app, http.MethodPost, "/payments/sent/fetch", `{"squeak_hash":"h","limit":5,"more":true}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	if st.Sent.Len() != 2 {
		t.Fatalf("expected page appended, got %d", st.Sent.Len())
	}
}

func TestMalformedFilterIsBadRequest(t *testing.T) {
	app, gw, _ := newHandlerApp(t)
	if status, _ := send(t, app, http.MethodPost, "/payments/sent/fetch", `{"limit":"ten"}`); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	gw.Fail(rpc.EndpointGetPaymentSummary, http.StatusInternalServerError, "lnd unavailable")
	status, body := send(t, app, http.MethodPost, "/payments/summary/fetch", "")
	if status != http.StatusBadGateway || body["error"] != "lnd unavailable" {
		t.Fatalf("expected 502, got %d %v", status, body)
	}
}
