// Package rpctest runs an in-process squeaknode gateway for tests. Handlers
// are registered per endpoint and speak the same codec as rpc.Client.
package rpctest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/squeaknode/squeakweb/internal/config"
	"github.com/squeaknode/squeakweb/internal/logging"
	"github.com/squeaknode/squeakweb/internal/rpc"
)

type handlerFunc func(body []byte) ([]byte, error)

// Gateway is a fake admin gateway listening on a loopback httptest server.
type Gateway struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]handlerFunc
	calls    map[string]int
	bodies   map[string][]byte
}

// New starts a gateway and stops it when the test ends.
func New(t testing.TB) *Gateway {
	t.Helper()
	g := &Gateway{
		handlers: make(map[string]handlerFunc),
		calls:    make(map[string]int),
		bodies:   make(map[string][]byte),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.AllowContentType(rpc.ContentType))
	r.Post("/{endpoint}", g.dispatch)

	g.server = httptest.NewServer(r)
	t.Cleanup(g.server.Close)
	return g
}

// URL is the base URL of the gateway.
func (g *Gateway) URL() string {
	return g.server.URL
}

// Client returns an rpc.Client pointed at the gateway with retries disabled.
func (g *Gateway) Client(t testing.TB) *rpc.Client {
	return g.ClientWith(t, config.Gateway{RetryAttempts: 1})
}

// ClientWith returns an rpc.Client pointed at the gateway using cfg's retry settings.
func (g *Gateway) ClientWith(t testing.TB, cfg config.Gateway) *rpc.Client {
	t.Helper()
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	c, err := rpc.NewClientWithHTTP(g.server.URL, cfg, &http.Client{Timeout: cfg.Timeout}, logging.Discard())
	if err != nil {
		t.Fatalf("rpc client: %v", err)
	}
	return c
}

// Handle registers fn for endpoint. A *rpc.RemoteError returned by fn is
// written with its status and text; any other error becomes a 500.
func Handle[Req, Rep any](g *Gateway, endpoint string, fn func(Req) (Rep, error)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers[endpoint] = func(body []byte) ([]byte, error) {
		var req Req
		if len(body) > 0 {
			if err := cbor.Unmarshal(body, &req); err != nil {
				return nil, &rpc.RemoteError{Endpoint: endpoint, Status: http.StatusBadRequest, Text: err.Error()}
			}
		}
		rep, err := fn(req)
		if err != nil {
			return nil, err
		}
		return cbor.Marshal(rep)
	}
}

// Fail makes every call to endpoint answer with status and text.
func (g *Gateway) Fail(endpoint string, status int, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers[endpoint] = func([]byte) ([]byte, error) {
		return nil, &rpc.RemoteError{Endpoint: endpoint, Status: status, Text: text}
	}
}

// Calls reports how many requests endpoint has received.
func (g *Gateway) Calls(endpoint string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[endpoint]
}

// LastRequest decodes the most recent request body sent to endpoint into v.
func (g *Gateway) LastRequest(endpoint string, v any) error {
	g.mu.Lock()
	body, ok := g.bodies[endpoint]
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("no request to %s", endpoint)
	}
	return cbor.Unmarshal(body, v)
}

func (g *Gateway) dispatch(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	g.calls[endpoint]++
	g.bodies[endpoint] = body
	h, ok := g.handlers[endpoint]
	g.mu.Unlock()

	if !ok {
		http.Error(w, "unknown endpoint "+endpoint, http.StatusNotFound)
		return
	}

	reply, err := h(body)
	if err != nil {
		status := http.StatusInternalServerError
		if re, ok := rpc.AsRemote(err); ok {
			status = re.Status
			err = fmt.Errorf("%s", re.Text)
		}
		w.WriteHeader(status)
		io.WriteString(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", rpc.ContentType)
	w.Write(reply)
}
