package models

import "time"

// APIKey is a third-party service credential stored for a user. The key
// material is opaque to this system; it is stored and returned as given.
type APIKey struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"    validate:"required,min=1"`
	Service   string    `json:"service" validate:"required,min=1"`
	Key       string    `json:"key"     validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at"`
}
