package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/squeaknode/squeakweb/internal/logging"
)

func TestLoginRateLimitPerUsername(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Post("/login", LoginRateLimit(cache, 2, logging.Discard()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	attempt := func(username string) int {
		req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(`{"username":"`+username+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	for i := 0; i < 2; i++ {
		if got := attempt("admin"); got != fiber.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, got)
		}
	}
	if got := attempt("Admin"); got != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 on third attempt, got %d", got)
	}
	if got := attempt("bob"); got != fiber.StatusOK {
		t.Fatalf("other usernames must not be throttled, got %d", got)
	}
	if ttl := mr.TTL(loginRateLimitPrefix + "admin"); ttl <= 0 {
		t.Fatalf("expected counter to expire, ttl %v", ttl)
	}
}

func TestLoginRateLimitWithoutRedisIsNoop(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginRateLimit(nil, 1, logging.Discard()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}
}
