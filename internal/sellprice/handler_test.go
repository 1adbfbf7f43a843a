package sellprice

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

func newHandlerApp(t *testing.T) (*fiber.App, *rpctest.Gateway) {
	t.Helper()
	gw := rpctest.New(t)
	st := NewState()
	h := NewHandler(NewService(gw.Client(t)), func(*fiber.Ctx) *State { return st })

	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler})
	app.Put("/sell-price", h.Set)
	app.Delete("/sell-price", h.Clear)
	return app, gw
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

func TestSetPriceFromBody(t *testing.T) {
	app, gw := newHandlerApp(t)
	rpctest.Handle(gw, rpc.EndpointSetSellPrice, func(req rpc.SellPriceRequest) (rpc.Empty, error) {
		if req.PriceMsat != 2500 {
			t.Errorf("unexpected price %d", req.PriceMsat)
		}
		return rpc.Empty{}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetSellPrice, func(rpc.Empty) (rpc.SellPriceReply, error) {
		return rpc.SellPriceReply{SellPrice: models.SellPrice{PriceMsat: 2500, PriceMsatIsSet: true}}, nil
	})

	status, body := send(t, app, http.MethodPut, "/sell-price", `{"price_msat":2500}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["price_msat"] != float64(2500) || data["price_msat_is_set"] != true {
		t.Fatalf("unexpected price %v", body)
	}
}

func TestNegativePriceIsBadRequest(t *testing.T) {
	app, gw := newHandlerApp(t)
	status, body := send(t, app, http.MethodPut, "/sell-price", `{"price_msat":-1}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
	if gw.Calls(rpc.EndpointSetSellPrice) != 0 {
		t.Fatalf("negative price reached the gateway")
	}
}

func TestClearFailureIsBadGateway(t *testing.T) {
	app, gw := newHandlerApp(t)
	gw.Fail(rpc.EndpointClearSellPrice, http.StatusInternalServerError, "config locked")
	status, body := send(t, app, http.MethodDelete, "/sell-price", "")
	if status != http.StatusBadGateway || body["error"] != "config locked" {
		t.Fatalf("expected 502, got %d %v", status, body)
	}
}
