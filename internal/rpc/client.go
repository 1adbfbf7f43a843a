// Package rpc calls the squeaknode admin gateway. Every endpoint takes one
// binary encoded request envelope in a POST body and answers with one binary
// encoded reply envelope.
package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/squeaknode/squeakweb/internal/config"
	"github.com/squeaknode/squeakweb/internal/logging"
)

// ContentType is the media type of request and reply bodies.
const ContentType = "application/cbor"

const maxReplyBytes = 32 << 20

// Client performs gateway calls. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
	enc      cbor.EncMode
	dec      cbor.DecMode
}

// NewClient builds a client for the gateway described by cfg.
func NewClient(cfg config.Gateway, logger *slog.Logger) (*Client, error) {
	return NewClientWithHTTP(cfg.BaseURL(), cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewClientWithHTTP targets baseURL through hc. Tests pass an httptest server URL and client.
func NewClientWithHTTP(baseURL string, cfg config.Gateway, hc *http.Client, logger *slog.Logger) (*Client, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	dec, err := cbor.DecOptions{MaxArrayElements: 1 << 20, MaxMapPairs: 1 << 20}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("cbor decoder: %w", err)
	}
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     hc,
		attempts: attempts,
		delay:    cfg.RetryDelay,
		logger:   logger,
		enc:      enc,
		dec:      dec,
	}, nil
}

// Call posts req to endpoint and decodes the reply into reply, which may be
// nil for endpoints that answer with an empty envelope.
func (c *Client) Call(ctx context.Context, endpoint string, req, reply any) error {
	endpoint = strings.Trim(endpoint, "/")
	if endpoint == "" {
		return ErrEmptyEndpoint
	}
	if req == nil {
		req = struct{}{}
	}
	body, err := c.enc.Marshal(req)
	if err != nil {
		return &codecError{op: "encode " + endpoint, err: err}
	}

	logger := logging.FromContext(ctx, c.logger)
	start := time.Now()
	err = retry.Do(
		func() error { return c.post(ctx, endpoint, body, reply) },
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("retrying gateway call",
				slog.String("endpoint", endpoint),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		logger.Debug("gateway call failed",
			slog.String("endpoint", endpoint),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return err
	}
	logger.Debug("gateway call completed",
		slog.String("endpoint", endpoint),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte, reply any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	httpReq.Header.Set("Content-Type", ContentType)
	httpReq.Header.Set("Accept", ContentType)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return fmt.Errorf("read %s reply: %w", endpoint, err)
	}

	if resp.StatusCode/100 != 2 {
		return &RemoteError{Endpoint: endpoint, Status: resp.StatusCode, Text: strings.TrimSpace(string(payload))}
	}

	if reply == nil || len(payload) == 0 {
		return nil
	}
	if err := c.dec.Unmarshal(payload, reply); err != nil {
		return &codecError{op: "decode " + endpoint, err: err}
	}
	return nil
}
