// Package backend is the typed HTTP client for the ProjeXtPal REST API.
// Every call goes through Client.do, which attaches credentials and maps
// failures onto APIError or ErrUnreachable.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/projextpal/projextpal-cli/internal/auth"
	"go.uber.org/zap"
)

// APIPrefix is prepended to every resource path.
const APIPrefix = "/api/v1"

// Config holds the connection settings for the backend.
type Config struct {
	BaseURL   string
	TimeoutMs int
}

// Client talks to the ProjeXtPal REST API.
type Client struct {
	baseURL string
	http    *http.Client
	creds   auth.Provider
	logger  *zap.Logger
}

// NewClient creates a Client. A nil logger discards logs; nil creds sends
// unauthenticated requests.
func NewClient(cfg Config, creds auth.Provider, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if creds == nil {
		creds = auth.None{}
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logger,
	}
}

// PostJSON sends body as JSON to path and decodes the response into out.
// out may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := auth.Authorize(ctx, req, c.creds); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("backend_request",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("backend_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: messageFromBody(respBody),
			Body:    string(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
