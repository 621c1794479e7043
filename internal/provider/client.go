// internal/provider/client.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sentinel errors callers branch on. Everything else surfaces as *APIError.
var (
	ErrInvalidCredentials = errors.New("provider: invalid credentials")
	ErrNotFound           = errors.New("provider: not found")
	ErrUnauthorized       = errors.New("provider: token missing or expired")
)

// Config holds the connection settings for the gamification platform API.
type Config struct {
	BaseURL      string
	APIKey       string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client is a thin REST client for the platform's v3 API. All calls take the
// caller's bearer token explicitly; the client itself holds no session state,
// so one instance is shared across requests.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// New creates a Client. A zero Timeout defaults to 15 seconds.
func New(cfg Config, logger *zap.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}
}

// BaseURL reports the configured API root, used by health checks.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("provider: %d: %s", e.StatusCode, e.Message)
}

// apiErrorBody is the platform's error envelope. Some endpoints return a bare
// {"message": ...} instead; both shapes are accepted.
type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// do performs one JSON round trip. body and out may be nil. A non-empty token
// is sent as a bearer credential; the API key always rides along.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("provider: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.decodeError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("provider: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) decodeError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))

	var envelope apiErrorBody
	_ = json.Unmarshal(raw, &envelope)
	msg := envelope.Error.Message
	if msg == "" {
		msg = envelope.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	c.log.Warn("provider call failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	return &APIError{StatusCode: resp.StatusCode, Code: envelope.Error.Code, Message: msg}
}
