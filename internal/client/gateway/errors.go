package gateway

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/syspark/internal/common"
)

// ErrorKind classifies a failed call. Callers branch on the kind, never on
// raw transport errors.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnauthorized
	KindConflict
	KindNotFound
	KindTransportUnreachable
	KindUnclassified
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindTransportUnreachable:
		return "transport_unreachable"
	default:
		return "unclassified"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrUnauthorized = common.ErrorUnauthorized
	ErrConflict     = common.ErrorAlreadyExists
	ErrNotFound     = common.ErrorNotFound
	ErrUnreachable  = common.ErrorUnavailable
	ErrUnclassified = common.ErrorUnexpected
)

// User-facing status messages, one per kind.
const (
	MsgUnauthorized       = "Unauthorized user"
	MsgConflict           = "Record already exists"
	MsgNotFound           = "Record not found"
	MsgUnreachable        = "Could not connect to the API"
	MsgUnclassified       = "Unexpected response from the API"
	MsgInvalidCredentials = "Invalid username or password"
	MsgInvalidForm        = "Please fix the highlighted fields"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindConflict:
		return ErrConflict
	case KindNotFound:
		return ErrNotFound
	case KindTransportUnreachable:
		return ErrUnreachable
	default:
		return ErrUnclassified
	}
}

// Message returns the user-facing text for k.
func (k ErrorKind) Message() string {
	switch k {
	case KindUnauthorized:
		return MsgUnauthorized
	case KindConflict:
		return MsgConflict
	case KindNotFound:
		return MsgNotFound
	case KindTransportUnreachable:
		return MsgUnreachable
	default:
		return MsgUnclassified
	}
}

// Error is a classified call failure.
type Error struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s (status %d)", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("api %s: %v", e.Kind, e.Err)
	}
	return "api " + e.Kind.String()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind of err. Non-gateway errors are unclassified;
// nil is KindNone.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindUnclassified
}

// Message maps any error to the single status string shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, common.ErrorValidation) {
		return MsgInvalidForm
	}
	return KindOf(err).Message()
}
