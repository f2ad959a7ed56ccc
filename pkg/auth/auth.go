// Package auth wraps the external authentication collaborator. This
// system never establishes or refreshes sessions itself; it only
// resolves an access token into a session or reports that none exists.
package auth

import (
	"context"
	"errors"
	"time"
)

// ErrNotAuthenticated indicates no valid session exists for an operation
// that requires ownership. Callers must treat it as terminal for the
// operation; there is no anonymous fallback.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session is the explicit session-context value passed into every
// operation that needs ownership information.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Client resolves tokens against the authentication collaborator.
type Client interface {
	// SessionFromToken returns the session for an access token, or
	// ErrNotAuthenticated when the token resolves to no valid session.
	SessionFromToken(ctx context.Context, token string) (*Session, error)

	// SignOut invalidates the session behind the token.
	SignOut(ctx context.Context, token string) error
}

// IsNotAuthenticated checks if an error indicates a missing or invalid session.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}
