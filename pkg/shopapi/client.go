// Package shopapi is a typed HTTP client for the PeakForm storefront backend.
// Every call takes a context and decodes the backend's JSON envelope; a
// response with success=false is returned as an *APIError.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// TokenSource supplies the current session token for authenticated calls.
// An empty string means anonymous.
type TokenSource interface {
	Token() string
}

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.peakform.fit.
	BaseURL string
	// Tokens supplies the session token; may be nil for anonymous-only use.
	Tokens TokenSource
	// Timeout defaults to 30s when zero.
	Timeout time.Duration
	// Debug enables request/response logging.
	Debug bool
}

// Client is a minimal HTTP client for the storefront backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	debug      bool
}

// NewClient constructs a Client with sane defaults.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     cfg.Tokens,
		debug:      cfg.Debug,
	}
}

// APIError is a backend response with success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "backend rejected the request"
	}
	return e.Message
}

// envelope carries the fields common to every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, endpoint string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, payload, result)
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, nil, result)
}

// do executes the request, applies the session token header and decodes the
// JSON body into result. The backend reports failures inside the envelope, so
// the body is decoded regardless of HTTP status to surface any message.
func (c *Client) do(req *http.Request, payload []byte, result any) error {
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("token", tok)
		}
	}

	if c.debug {
		ev := log.Debug().Str("method", req.Method).Str("url", req.URL.String())
		if len(payload) > 0 {
			ev = ev.RawJSON("request", payload)
		}
		ev.Msg("[SHOPAPI] Outgoing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[SHOPAPI] Incoming response")
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return &APIError{Message: env.Message}
	}
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
