// Package metadata is a small key/value table in the local SQLite database.
// The session provider keeps the bearer token and its attributes here.
package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("metadata key not found")

// Well-known keys.
const (
	KeyToken     = "session.token"
	KeyUsername  = "session.username"
	KeyRole      = "session.role"
	KeyExpiresAt = "session.expires_at"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix string) (map[string]string, error)
}
