package twitter

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
	app.Post("/twitter/accounts", h.Create)
	app.Delete("/twitter/accounts/:id", h.Delete)
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

func TestCreateAccountAnswersCreated(t *testing.T) {
	app, gw := newHandlerApp(t)
	rpctest.Handle(gw, rpc.EndpointAddTwitterAccount, func(req rpc.AddTwitterAccountRequest) (rpc.TwitterAccountIDReply, error) {
		if req.Handle != "squeaknode" || req.ProfileID != 2 || req.BearerToken != "tok" {
			t.Errorf("unexpected request %+v", req)
		}
		return rpc.TwitterAccountIDReply{TwitterAccountID: 8}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetTwitterAccounts, func(rpc.Empty) (rpc.TwitterAccountsReply, error) {
		return rpc.TwitterAccountsReply{TwitterAccounts: []models.TwitterAccount{{TwitterAccountID: 8}}}, nil
	})

	status, body := send(t, app, http.MethodPost, "/twitter/accounts", `{"handle":"squeaknode","profile_id":2,"bearer_token":"tok"}`)
	if status != http.StatusCreated || body["twitter_account_id"] != float64(8) {
		t.Fatalf("expected 201 with id, got %d %v", status, body)
	}
}

func TestCreateAndDeleteRejectBadInput(t *testing.T) {
	app, gw := newHandlerApp(t)
	status, body := send(t, app, http.MethodPost, "/twitter/accounts", `{"profile_id":2,"bearer_token":"tok"}`)
	if status != http.StatusBadRequest || body["error"] != "handle is required" {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
	if status, _ := send(t, app, http.MethodDelete, "/twitter/accounts/abc", ""); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", status)
	}
	if gw.Calls(rpc.EndpointAddTwitterAccount) != 0 || gw.Calls(rpc.EndpointDeleteTwitterAccount) != 0 {
		t.Fatalf("invalid input reached the gateway")
	}
}
