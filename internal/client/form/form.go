// Package form implements the create/edit form controller: editable field
// state bound to a validation schema, per-field errors and a submit state
// machine.
//
//	idle ──Open──▶ editing ──Set──▶ editing
//	                  │
//	               Submit (zero errors)
//	                  ▼
//	             submitting ──▶ submitted(success | failure)
//
// A submit with validation errors stays in editing and surfaces every
// error. Nothing is retried; the user resubmits explicitly.
package form

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/syspark/internal/client/gateway"
	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/validation"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "submitted"
	}
}

// Outcome qualifies StateSubmitted.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// Status messages set on a successful submit.
const (
	MsgCreated = "Created successfully"
	MsgUpdated = "Updated successfully"
)

var (
	ErrNotOpen = errors.New("form is not open")
	ErrBusy    = errors.New("form is being submitted")
)

// Binder reads and writes the editable fields of T by path.
type Binder[T any] interface {
	Defaults() T
	Paths() []string
	Get(rec T, path string) string
	Set(rec *T, path, value string) error
}

// FindFunc loads the record being edited.
type FindFunc[T any] func(ctx context.Context, id models.ID) (T, error)

// SubmitFunc sends the record; id is empty in create mode.
type SubmitFunc[T any] func(ctx context.Context, mode validation.Mode, id models.ID, rec T) (T, error)

// View is a snapshot of the controller.
type View[T any] struct {
	Mode    validation.Mode
	State   State
	Outcome Outcome
	ID      models.ID
	Values  T
	Errors  validation.Errors
	Message string
}

// Controller is safe for concurrent use; network calls run without the
// lock held.
type Controller[T any] struct {
	mu sync.Mutex

	schema validation.Validator[T]
	binder Binder[T]

	// sanitize strips fields that must not be seeded from a fetched record.
	sanitize func(T) T

	mode    validation.Mode
	state   State
	outcome Outcome
	id      models.ID
	values  T
	errors  validation.Errors
	message string
}

// Option customises a Controller.
type Option[T any] func(*Controller[T])

// WithSanitizer sets the function applied to records loaded for editing.
func WithSanitizer[T any](fn func(T) T) Option[T] {
	return func(c *Controller[T]) {
		if fn != nil {
			c.sanitize = fn
		}
	}
}

func New[T any](schema validation.Validator[T], binder Binder[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		schema:   schema,
		binder:   binder,
		sanitize: func(v T) T { return v },
		values:   binder.Defaults(),
		errors:   validation.Errors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller[T]) reset(mode validation.Mode, id models.ID) {
	c.mode = mode
	c.id = id
	c.state = StateEditing
	c.outcome = OutcomeNone
	c.values = c.binder.Defaults()
	c.errors = validation.Errors{}
	c.message = ""
}

// OpenCreate opens an empty form in create mode.
func (c *Controller[T]) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return ErrBusy
	}
	c.reset(validation.ModeCreate, "")
	return nil
}

// OpenEdit opens the form in edit mode seeded with the record find returns.
// When the fetch fails the form keeps its defaults, exposes the failure
// message and returns the error; it is still open for editing.
func (c *Controller[T]) OpenEdit(ctx context.Context, id models.ID, find FindFunc[T]) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.reset(validation.ModeEdit, id)
	c.mu.Unlock()

	rec, err := find(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Reopened while fetching: the newer open wins.
	if c.mode != validation.ModeEdit || c.id != id || c.state != StateEditing {
		return err
	}
	if err != nil {
		c.message = gateway.Message(err)
		return err
	}
	c.values = c.sanitize(rec)
	return nil
}

// Set assigns one field and re-validates only that path. Errors already
// surfaced on other paths are kept until the next full validation.
func (c *Controller[T]) Set(path, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		return ErrNotOpen
	case StateSubmitting:
		return ErrBusy
	}

	if err := c.binder.Set(&c.values, path, value); err != nil {
		return err
	}

	c.state = StateEditing
	c.outcome = OutcomeNone
	if msg, ok := c.schema.ValidateField(c.values, c.mode, path); ok {
		delete(c.errors, path)
	} else {
		c.errors[path] = msg
	}
	return nil
}

// Submit validates the whole record and, if valid, hands it to send.
//
// Invalid: stays editing, every error is surfaced and a *validation.Error
// is returned without calling send. Success: submitted(success); in create
// mode the fields reset to defaults. Failure: submitted(failure) with the
// entered values kept and Message set from the error taxonomy.
func (c *Controller[T]) Submit(ctx context.Context, send SubmitFunc[T]) (T, error) {
	var zero T

	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.mu.Unlock()
		return zero, ErrNotOpen
	case StateSubmitting:
		c.mu.Unlock()
		return zero, ErrBusy
	}

	errs := c.schema.Validate(c.values, c.mode)
	if len(errs) > 0 {
		c.state = StateEditing
		c.outcome = OutcomeNone
		c.errors = errs
		c.message = gateway.MsgInvalidForm
		c.mu.Unlock()
		return zero, &validation.Error{Errors: maps.Clone(errs)}
	}

	c.errors = validation.Errors{}
	c.state = StateSubmitting
	mode, id, values := c.mode, c.id, c.values
	c.mu.Unlock()

	saved, err := send(ctx, mode, id, values)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateSubmitted
	if err != nil {
		c.outcome = OutcomeFailure
		c.message = gateway.Message(err)
		return zero, err
	}

	c.outcome = OutcomeSuccess
	c.message = successMessage(mode)
	if mode == validation.ModeCreate {
		c.values = c.binder.Defaults()
	}
	return saved, nil
}

// Close returns the form to idle and discards its state.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
	c.outcome = OutcomeNone
	c.id = ""
	c.values = c.binder.Defaults()
	c.errors = validation.Errors{}
	c.message = ""
}

// Value returns the current text of one field.
func (c *Controller[T]) Value(path string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binder.Get(c.values, path)
}

// Paths lists the editable fields.
func (c *Controller[T]) Paths() []string {
	return c.binder.Paths()
}

func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View[T]{
		Mode:    c.mode,
		State:   c.state,
		Outcome: c.outcome,
		ID:      c.id,
		Values:  c.values,
		Errors:  maps.Clone(c.errors),
		Message: c.message,
	}
}

func successMessage(mode validation.Mode) string {
	if mode == validation.ModeEdit {
		return MsgUpdated
	}
	return MsgCreated
}
