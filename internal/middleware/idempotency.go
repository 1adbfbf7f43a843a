package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/squeaknode/squeakweb/internal/logging"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	idempotencyPrefix    = "idempotency:v2:"
	pendingMarker        = "pending"
	storeTimeout         = 2 * time.Second
)

// replay is what gets stored for a completed request. Only the headers a
// browser needs to read the body are kept.
type replay struct {
	Status      int    `cbor:"1,keyasint"`
	ContentType string `cbor:"2,keyasint,omitempty"`
	Body        []byte `cbor:"3,keyasint"`
}

// Idempotency replays the stored response of an unsafe request that repeats
// an Idempotency-Key header, so a retried like, payment or squeak is not sent
// to the node twice. Requests without the header run normally. Failed
// requests and 5xx answers are not stored, so they can be retried.
func Idempotency(store *redis.Client, ttl time.Duration, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		key := c.Get(idempotencyKeyHeader)
		if key == "" {
			return c.Next()
		}

		log := logging.FromContext(c.UserContext(), logger).With(slog.String("idempotency_key", key))
		storeKey := idempotencyPrefix + SessionID(c) + ":" + key

		ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
		defer cancel()

		reserved, err := store.SetNX(ctx, storeKey, pendingMarker, ttl).Result()
		if err != nil {
			log.Error("idempotency reservation failed", slog.Any("error", err))
			return fiber.NewError(fiber.StatusServiceUnavailable, "idempotency store unavailable")
		}
		if !reserved {
			return replayStored(c, store, storeKey, log)
		}

		if err := c.Next(); err != nil {
			release(store, storeKey)
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			release(store, storeKey)
			return nil
		}

		payload, err := cbor.Marshal(replay{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        c.Response().Body(),
		})
		if err != nil {
			log.Error("encode idempotent response", slog.Any("error", err))
			release(store, storeKey)
			return nil
		}

		saveCtx, saveCancel := context.WithTimeout(context.Background(), storeTimeout)
		defer saveCancel()
		if err := store.Set(saveCtx, storeKey, payload, ttl).Err(); err != nil {
			// The action already ran; answer it and let the key expire.
			log.Warn("persist idempotent response", slog.Any("error", err))
		}
		return nil
	}
}

func replayStored(c *fiber.Ctx, store *redis.Client, storeKey string, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	raw, err := store.Get(ctx, storeKey).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return fiber.NewError(fiber.StatusConflict, "duplicate request, retry")
	case err != nil:
		log.Error("idempotency lookup failed", slog.Any("error", err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "idempotency store unavailable")
	case string(raw) == pendingMarker:
		return fiber.NewError(fiber.StatusConflict, "duplicate request currently processing")
	}

	var r replay
	if err := cbor.Unmarshal(raw, &r); err != nil {
		log.Warn("decode stored idempotent response", slog.Any("error", err))
		return fiber.NewError(fiber.StatusConflict, "duplicate request")
	}
	if r.ContentType != "" {
		c.Set(fiber.HeaderContentType, r.ContentType)
	}
	return c.Status(r.Status).Send(r.Body)
}

func release(store *redis.Client, storeKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	store.Del(ctx, storeKey)
}
