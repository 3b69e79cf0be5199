package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/peakform/storefront/internal/models"
)

// AuthResponse is the result of a login, registration or identity exchange.
// When the account has OTP enabled the backend answers with RequiresOTP set
// instead of issuing a token; the caller then requests an OTP and retries.
type AuthResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	RequiresOTP bool        `json:"requiresOTP"`
	Token       string      `json:"token"`
	User        models.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email/password and an optional OTP code.
func (c *Client) Login(ctx context.Context, email, password, otp string) (*AuthResponse, error) {
	return c.postAuth(ctx, "/api/user/login", loginRequest{Email: email, Password: password, OTP: otp})
}

// Register creates an account and returns the issued session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	return c.postAuth(ctx, "/api/user/register", registerRequest{Name: name, Email: email, Password: password})
}

// SendOTP asks the backend to mail a one-time code to the account.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/api/user/send-otp", map[string]string{"email": email}, nil)
}

// ExchangeAuth0 trades an identity-provider id_token for a backend session.
func (c *Client) ExchangeAuth0(ctx context.Context, idToken string) (*AuthResponse, error) {
	return c.postAuth(ctx, "/api/user/auth0", map[string]string{"id_token": idToken})
}

// postAuth decodes the full auth payload itself: a requiresOTP answer carries
// success=false but is not an error from the caller's point of view.
func (c *Client) postAuth(ctx context.Context, endpoint string, body any) (*AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out AuthResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success && !out.RequiresOTP {
		return nil, &APIError{Message: out.Message}
	}
	return &out, nil
}
