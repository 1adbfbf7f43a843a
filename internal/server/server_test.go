package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/squeaknode/squeakweb/internal/config"
	"github.com/squeaknode/squeakweb/internal/logging"
	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/rpc/rpctest"
)

func newTestServer(t *testing.T) (*Server, *rpctest.Gateway) {
	t.Helper()
	gw := rpctest.New(t)
	cfg := config.Config{
		AppName:                "squeakweb-test",
		AppEnv:                 "test",
		AdminUsername:          "admin",
		AdminPassword:          "password1",
		LoginAttemptsPerMinute: 5,
		SessionSecret:          "test-secret",
		SessionTTL:             time.Hour,
		Gateway:                config.Gateway{Timeout: time.Second},
	}
	srv, err := New(cfg, nil, nil, gw.Client(t), logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv, gw
}

func do(t *testing.T, srv *Server, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.App().Test(req, -1)
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

func login(t *testing.T, srv *Server) string {
	t.Helper()
	status, body := do(t, srv, http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"password1"}`)
	if status != http.StatusOK {
		t.Fatalf("login: status %d body %v", status, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", body)
	}
	return token
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	srv, _ := newTestServer(t)
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/squeaks", "", ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if status, _ := do(t, srv, http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"wrong-one"}`); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", status)
	}
}

func TestTimelineFetchIsCachedPerSession(t *testing.T) {
	srv, gw := newTestServer(t)
	rpctest.Handle(gw, rpc.EndpointGetTimelineSqueaks, func(rpc.SqueakPageRequest) (rpc.SqueaksReply, error) {
		return rpc.SqueaksReply{Entries: []models.Squeak{{SqueakHash: "aa"}, {SqueakHash: "bb"}}}, nil
	})

	first := login(t, srv)
	second := login(t, srv)

	status, body := do(t, srv, http.MethodPost, "/api/v1/squeaks/timeline/fetch", first, `{"limit":2}`)
	if status != http.StatusOK {
		t.Fatalf("fetch: status %d body %v", status, body)
	}
	if data, _ := body["data"].([]any); len(data) != 2 || body["status"] != "idle" {
		t.Fatalf("unexpected timeline %v", body)
	}

	_, body = do(t, srv, http.MethodGet, "/api/v1/squeaks/lists/timeline", second, "")
	if data, _ := body["data"].([]any); len(data) != 0 {
		t.Fatalf("second session sees first session's timeline: %v", body)
	}
	if srv.ActiveSessions() != 2 {
		t.Fatalf("expected two sessions, got %d", srv.ActiveSessions())
	}
}

func TestGatewayFailureBecomesBadGateway(t *testing.T) {
	srv, gw := newTestServer(t)
	gw.Fail(rpc.EndpointGetSqueak, http.StatusInternalServerError, "squeak not found in db")
	token := login(t, srv)

	status, body := do(t, srv, http.MethodPost, "/api/v1/squeaks/current/fetch", token, `{"squeak_hash":"aa"}`)
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if body["error"] != "squeak not found in db" {
		t.Fatalf("expected gateway text, got %v", body)
	}
}

func TestLogoutDropsSessionSlices(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv)

	if status, _ := do(t, srv, http.MethodGet, "/api/v1/squeaks", token, ""); status != http.StatusOK {
		t.Fatalf("snapshot: status %d", status)
	}
	if srv.ActiveSessions() != 1 {
		t.Fatalf("expected one session")
	}
	if status, _ := do(t, srv, http.MethodPost, "/api/v1/auth/logout", token, ""); status != http.StatusOK {
		t.Fatalf("logout: status %d", status)
	}
	if srv.ActiveSessions() != 0 {
		t.Fatalf("expected session slices dropped")
	}
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/squeaks", token, ""); status != http.StatusUnauthorized {
		t.Fatalf("expected token rejected after logout, got %d", status)
	}
}

func TestLogoutDropsEverySessionOfTheUser(t *testing.T) {
	srv, _ := newTestServer(t)
	first := login(t, srv)
	second := login(t, srv)

	for _, token := range []string{first, second} {
		if status, _ := do(t, srv, http.MethodGet, "/api/v1/squeaks", token, ""); status != http.StatusOK {
			t.Fatalf("snapshot: status %d", status)
		}
	}
	if srv.ActiveSessions() != 2 {
		t.Fatalf("expected two sessions, got %d", srv.ActiveSessions())
	}

	if status, _ := do(t, srv, http.MethodPost, "/api/v1/auth/logout", first, ""); status != http.StatusOK {
		t.Fatalf("logout: status %d", status)
	}
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/squeaks", second, ""); status != http.StatusUnauthorized {
		t.Fatalf("expected second token rejected, got %d", status)
	}
	if srv.ActiveSessions() != 0 {
		t.Fatalf("expected no bundles left after logout, got %d", srv.ActiveSessions())
	}
	if srv.SweepSessions() != 0 {
		t.Fatalf("nothing should be left to sweep")
	}
}
