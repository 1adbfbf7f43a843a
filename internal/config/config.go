package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-envconfig"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string `env:"APP_NAME, default=squeakweb"`
	AppEnv   string `env:"APP_ENV, default=development"`
	Port     string `env:"PORT, default=12994"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Gateway Gateway `env:",prefix=GATEWAY_"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	AdminUsername          string        `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword          string        `env:"ADMIN_PASSWORD"`
	AllowRegistration      bool          `env:"ALLOW_REGISTRATION, default=false"`
	LoginAttemptsPerMinute int           `env:"LOGIN_ATTEMPTS_PER_MINUTE, default=5"`
	SessionSecret          string        `env:"SESSION_SECRET"`
	SessionTTL             time.Duration `env:"SESSION_TTL, default=12h"`

	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
	ShutdownPeriod time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

// Gateway locates the squeaknode admin gateway that serves the binary RPC endpoints.
type Gateway struct {
	Host          string        `env:"HOST, default=localhost"`
	Port          int           `env:"PORT, default=8994"`
	Timeout       time.Duration `env:"TIMEOUT, default=30s"`
	RetryAttempts uint          `env:"RETRY_ATTEMPTS, default=1"`
	RetryDelay    time.Duration `env:"RETRY_DELAY, default=200ms"`
}

// BaseURL returns the http base URL for gateway calls.
func (g Gateway) BaseURL() string {
	return "http://" + net.JoinHostPort(g.Host, strconv.Itoa(g.Port))
}

// Load reads configuration values from the process environment.
func Load(ctx context.Context) (Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper. Tests pass a MapLookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.Gateway.Port <= 0 || cfg.Gateway.Port > 65535 {
		return Config{}, fmt.Errorf("invalid GATEWAY_PORT: %d", cfg.Gateway.Port)
	}
	if cfg.Gateway.RetryAttempts == 0 {
		cfg.Gateway.RetryAttempts = 1
	}

	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.SessionSecret == "" {
			return Config{}, fmt.Errorf("SESSION_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	// Dev sessions do not survive a restart without an explicit secret.
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString()
	}

	return cfg, nil
}

// LoadGateway reads only the GATEWAY_* variables. Tools that talk to the
// gateway directly use it and need none of the web settings.
func LoadGateway(ctx context.Context, lookuper envconfig.Lookuper) (Gateway, error) {
	var g Gateway
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &g,
		Lookuper: envconfig.PrefixLookuper("GATEWAY_", lookuper),
	}); err != nil {
		return Gateway{}, fmt.Errorf("process env: %w", err)
	}
	if g.RetryAttempts == 0 {
		g.RetryAttempts = 1
	}
	return g, nil
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}
