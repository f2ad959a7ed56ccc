package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// HTTPClient talks to the authentication collaborator over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the auth service at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

// SessionFromToken resolves a bearer token via GET /session.
func (c *HTTPClient) SessionFromToken(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/session", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session request failed: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrNotAuthenticated
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("session request returned status %d", resp.StatusCode)
	}

	var session Session

	err = json.NewDecoder(resp.Body).Decode(&session)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}

	if session.UserID == "" || session.Expired(time.Now().UTC()) {
		return nil, ErrNotAuthenticated
	}

	return &session, nil
}

// SignOut invalidates the session via POST /signout.
func (c *HTTPClient) SignOut(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/signout", nil)
	if err != nil {
		return fmt.Errorf("failed to build signout request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("signout request failed: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("signout request returned status %d", resp.StatusCode)
	}

	return nil
}
