package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/squeaknode/squeakweb/internal/auth"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/config"
	"github.com/squeaknode/squeakweb/internal/identity"
	"github.com/squeaknode/squeakweb/internal/middleware"
	"github.com/squeaknode/squeakweb/internal/network"
	"github.com/squeaknode/squeakweb/internal/notification"
	"github.com/squeaknode/squeakweb/internal/payments"
	"github.com/squeaknode/squeakweb/internal/peers"
	"github.com/squeaknode/squeakweb/internal/profiles"
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/sellprice"
	"github.com/squeaknode/squeakweb/internal/squeaks"
	"github.com/squeaknode/squeakweb/internal/twitter"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg     config.Config
	DB      *pgxpool.Pool
	Cache   *redis.Client
	Logger  *slog.Logger
	Gateway *rpc.Client
}

// Bundle holds every slice of one browser session.
type Bundle struct {
	Squeaks   *squeaks.State
	Profiles  *profiles.State
	Peers     *peers.State
	Payments  *payments.State
	SellPrice *sellprice.State
	Network   *network.State
	Twitter   *twitter.State
}

func newBundle() *Bundle {
	return &Bundle{
		Squeaks:   squeaks.NewState(),
		Profiles:  profiles.NewState(),
		Peers:     peers.NewState(),
		Payments:  payments.NewState(),
		SellPrice: sellprice.NewState(),
		Network:   network.NewState(),
		Twitter:   twitter.NewState(),
	}
}

// Setup configures middlewares and all application routes. It returns the
// session registry so callers can inspect or drop sessions.
func Setup(app *fiber.App, d Deps) (*cache.Sessions[Bundle], error) {
	// Enforce DB/Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return nil, fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return nil, fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	if d.Gateway == nil {
		return nil, fmt.Errorf("gateway client is required")
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID(d.Logger))
	// One line per request; Audit adds the structured record for failures.
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Users
	var identityRepo identity.Repository
	if d.DB != nil {
		pg := identity.NewPostgresRepository(d.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := pg.EnsureSchema(ctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("ensure user schema: %w", err)
		}
		identityRepo = pg
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(identityRepo)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	admin, err := identitySvc.EnsureAdmin(ctx, d.Cfg.AdminUsername, d.Cfg.AdminPassword)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("seed admin user: %w", err)
	}
	d.Logger.Info("admin user ready", slog.String("username", admin.Username))

	// Sessions and services
	sessions := cache.NewSessions(newBundle)
	session := func(c *fiber.Ctx) *Bundle {
		return sessions.Get(middleware.SessionKey(c))
	}

	tokens := auth.NewTokens(d.Cfg.SessionSecret, d.Cfg.SessionTTL)
	authSvc := auth.NewService(identitySvc, identityRepo, tokens, d.Gateway, func(userID string) {
		sessions.DropOwner(userID)
	}, d.Logger)
	authHandler := auth.NewHandler(authSvc, !d.Cfg.IsDev())

	var registerHandler fiber.Handler
	if d.Cfg.AllowRegistration {
		registerHandler = identity.NewHandler(identitySvc).Register
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	squeakHandler := squeaks.NewHandler(squeaks.NewService(d.Gateway, notifier), func(c *fiber.Ctx) *squeaks.State {
		return session(c).Squeaks
	})
	profileHandler := profiles.NewHandler(profiles.NewService(d.Gateway), func(c *fiber.Ctx) *profiles.State {
		return session(c).Profiles
	})
	peerHandler := peers.NewHandler(peers.NewService(d.Gateway), func(c *fiber.Ctx) *peers.State {
		return session(c).Peers
	})
	paymentHandler := payments.NewHandler(payments.NewService(d.Gateway), func(c *fiber.Ctx) *payments.State {
		return session(c).Payments
	})
	sellPriceHandler := sellprice.NewHandler(sellprice.NewService(d.Gateway), func(c *fiber.Ctx) *sellprice.State {
		return session(c).SellPrice
	})
	networkHandler := network.NewHandler(network.NewService(d.Gateway), func(c *fiber.Ctx) *network.State {
		return session(c).Network
	})
	twitterHandler := twitter.NewHandler(twitter.NewService(d.Gateway), func(c *fiber.Ctx) *twitter.State {
		return session(c).Twitter
	})

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginAttemptsPerMinute, d.Logger)
	RegisterAuthRoutes(api, authHandler, rateLimiter, registerHandler)

	// Protected routes
	protected := api.Group("", middleware.SessionAuth(authSvc))
	if d.Cache != nil {
		protected.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterSessionRoutes(protected, authHandler)
	RegisterSqueakRoutes(protected, squeakHandler)
	RegisterProfileRoutes(protected, profileHandler)
	RegisterPeerRoutes(protected, peerHandler)
	RegisterPaymentRoutes(protected, paymentHandler)
	RegisterSellPriceRoutes(protected, sellPriceHandler)
	RegisterNetworkRoutes(protected, networkHandler)
	RegisterTwitterRoutes(protected, twitterHandler)

	return sessions, nil
}
