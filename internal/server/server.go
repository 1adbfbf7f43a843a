package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/config"
	"github.com/squeaknode/squeakweb/internal/routes"
	"github.com/squeaknode/squeakweb/internal/rpc"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
	app      *fiber.App
	cfg      config.Config
	sessions *cache.Sessions[routes.Bundle]
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
// db and rdb may be nil in development.
func New(cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, gw *rpc.Client, logger *slog.Logger) (*Server, error) {
	// Gateway calls can take the full gateway timeout, twice for mutate then refetch.
	writeTimeout := 2*cfg.Gateway.Timeout + 5*time.Second
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          writeTimeout,
		ErrorHandler:          apierror.Handler,
		DisableStartupMessage: !cfg.IsDev(),
	})

	sessions, err := routes.Setup(app, routes.Deps{Cfg: cfg, DB: db, Cache: rdb, Logger: logger, Gateway: gw})
	if err != nil {
		return nil, err
	}

	return &Server{app: app, cfg: cfg, sessions: sessions}, nil
}

// App exposes the Fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// ActiveSessions is the number of sessions holding cached slices.
func (s *Server) ActiveSessions() int {
	return s.sessions.Len()
}

// SweepSessions drops the cached slices of sessions whose token has expired.
func (s *Server) SweepSessions() int {
	return s.sessions.Sweep()
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
