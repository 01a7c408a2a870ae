// Package client is the gateway to the travel-booking API. Every request
// carries the static API key and, while a session is active, its bearer
// token. A 401 ends the session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// APIKeyHeader must match the header the server checks.
const APIKeyHeader = "apiKey"

var (
	ErrUnauthorized = errors.New("unauthorized: session ended")
	ErrNotFound     = errors.New("not found")
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// OnUnauthorized runs after a 401 has ended the session.
	OnUnauthorized func()
}

// APIError is a non-2xx response. A 401 matches ErrUnauthorized and a 404
// matches ErrNotFound under errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	Errors     any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// envelope mirrors the server response wrapper
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  any             `json:"errors"`
}

type Client struct {
	baseURL        string
	apiKey         string
	onUnauthorized func()
	http           *http.Client
	session        *Session
	log            *zap.Logger
}

func New(cfg Config, session *Session, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		onUnauthorized: cfg.OnUnauthorized,
		http:           &http.Client{Timeout: timeout},
		session:        session,
		log:            log.With(zap.String("component", "api_client")),
	}
}

// Session returns the session the client reads its token from.
func (c *Client) Session() *Session {
	return c.session
}

// Do sends body as JSON and decodes the envelope's data into out. Either may be nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, contentType, reader, out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Response received",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.expire()
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Errors: env.Errors}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}

func (c *Client) expire() {
	if !c.session.Active() {
		return
	}
	c.log.Info("Session rejected by server, logging out")
	if err := c.session.End(); err != nil {
		c.log.Warn("Failed to clear stored session", zap.Error(err))
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// Message turns an error from this package into text fit for the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, ErrUnauthorized):
		return "Sesi Anda telah berakhir, silakan login kembali"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "Permintaan dibatalkan atau melebihi batas waktu"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "Tidak dapat terhubung ke server"
	}
	return err.Error()
}
