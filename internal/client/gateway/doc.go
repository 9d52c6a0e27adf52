// Package gateway is the thin HTTP client of the SysPark REST API.
//
// # Overview
//
// Client.Do performs one JSON call under /api, attaching
// "Authorization: Bearer <token>" only when a token is present and an
// X-Request-ID for log correlation. It never retries and never returns raw
// transport errors: every outcome is a Result whose Kind follows the status
// taxonomy:
//
//	401, 403            KindUnauthorized
//	422                 KindConflict
//	404                 KindNotFound
//	no response         KindTransportUnreachable
//	anything else       KindUnclassified
//
// Resource binds a Client to one resource path and a TokenSource and offers
// typed List/Find/Create/Update/Delete. Failures come back as *Error, which
// matches the sentinels ErrUnauthorized, ErrConflict, ErrNotFound,
// ErrUnreachable and ErrUnclassified via errors.Is. Message turns any error
// into the single status line shown to the user.
package gateway
