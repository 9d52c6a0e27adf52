// Package common defines shared constants and sentinel errors used across
// the client layers of SysPark admin. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Remote API errors, one per class of the status taxonomy.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorNotFound      = errors.New("not found")
	ErrorUnavailable   = errors.New("api unavailable")
	ErrorUnexpected    = errors.New("unexpected response")

	// Client-side validation failure; never reaches the network.
	ErrorValidation = errors.New("validation error")

	// Session errors.
	ErrorNotLoggedIn = errors.New("not logged in")
)
