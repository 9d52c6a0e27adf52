// Package common contains shared constants and sentinel errors used across
// SysPark admin components.
package common

// Outbound HTTP header names used by the API gateway.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// APIPrefix is the path prefix of every REST resource exposed by the
// SysPark backend.
const APIPrefix = "/api"
