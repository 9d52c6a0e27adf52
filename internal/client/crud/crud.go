// Package crud composes the form and list controllers over one REST
// resource. Every operation reports into a single status slot that the
// next operation overwrites.
package crud

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/syspark/internal/client/form"
	"github.com/dmitrijs2005/syspark/internal/client/gateway"
	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/pagination"
	"github.com/dmitrijs2005/syspark/internal/client/validation"
	"github.com/dmitrijs2005/syspark/internal/logging"
)

// Status messages for successful operations.
const (
	MsgCreated         = form.MsgCreated
	MsgUpdated         = form.MsgUpdated
	MsgDeleted         = "Deleted successfully"
	MsgDeleteCancelled = "Deletion cancelled"
)

// ErrDeleteNotConfirmed is returned by ConfirmDelete when no matching
// RequestDelete preceded it. No call is made.
var ErrDeleteNotConfirmed = errors.New("delete was not requested for this id")

// Store is the remote surface of one resource. *gateway.Resource satisfies it.
type Store[T any] interface {
	pagination.Lister[T]
	Find(ctx context.Context, id models.ID) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id models.ID, rec T) (T, error)
	Delete(ctx context.Context, id models.ID) error
}

type Orchestrator[T any] struct {
	store  Store[T]
	schema validation.Validator[T]
	list   *pagination.Controller[T]
	form   *form.Controller[T]
	log    logging.Logger

	mu            sync.Mutex
	status        string
	pendingDelete models.ID
}

type config[T any] struct {
	pageSize int
	log      logging.Logger
	sanitize func(T) T
}

type Option[T any] func(*config[T])

func WithPageSize[T any](n int) Option[T] {
	return func(c *config[T]) { c.pageSize = n }
}

func WithLogger[T any](l logging.Logger) Option[T] {
	return func(c *config[T]) { c.log = l }
}

// WithSanitizer sets how fetched records are cleaned before seeding the
// edit form.
func WithSanitizer[T any](fn func(T) T) Option[T] {
	return func(c *config[T]) { c.sanitize = fn }
}

func New[T any](store Store[T], schema validation.Validator[T], binder form.Binder[T], opts ...Option[T]) *Orchestrator[T] {
	cfg := config[T]{pageSize: pagination.DefaultPageSize, log: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Orchestrator[T]{
		store:  store,
		schema: schema,
		list: pagination.New[T](store,
			pagination.WithPageSize[T](cfg.pageSize),
			pagination.WithLogger[T](cfg.log)),
		form: form.New[T](schema, binder, form.WithSanitizer[T](cfg.sanitize)),
		log:  cfg.log,
	}
}

// List exposes the list controller for reading its view.
func (o *Orchestrator[T]) List() *pagination.Controller[T] { return o.list }

// Form exposes the active form.
func (o *Orchestrator[T]) Form() *form.Controller[T] { return o.form }

// Status returns the last operation's message.
func (o *Orchestrator[T]) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *Orchestrator[T]) setStatus(msg string) {
	o.mu.Lock()
	o.status = msg
	o.mu.Unlock()
}

// report stores the outcome of an operation and passes err through.
func (o *Orchestrator[T]) report(err error, success string) error {
	if err != nil {
		o.setStatus(gateway.Message(err))
		return err
	}
	o.setStatus(success)
	return nil
}

func (o *Orchestrator[T]) refresh(ctx context.Context) {
	if err := o.list.Refresh(ctx); err != nil && !errors.Is(err, pagination.ErrStale) {
		o.log.Warn(ctx, "list refresh failed", "error", err)
	}
}

// list navigation

func (o *Orchestrator[T]) Fetch(ctx context.Context) error {
	return o.navigate(o.list.Fetch(ctx))
}

func (o *Orchestrator[T]) SetPage(ctx context.Context, p int) error {
	return o.navigate(o.list.SetPage(ctx, p))
}

func (o *Orchestrator[T]) Next(ctx context.Context) error {
	return o.navigate(o.list.Next(ctx))
}

func (o *Orchestrator[T]) Prev(ctx context.Context) error {
	return o.navigate(o.list.Prev(ctx))
}

func (o *Orchestrator[T]) SetSize(ctx context.Context, n int) error {
	return o.navigate(o.list.SetSize(ctx, n))
}

// SessionChanged re-fetches the list after a login or logout.
func (o *Orchestrator[T]) SessionChanged(ctx context.Context) error {
	return o.navigate(o.list.SessionChanged(ctx))
}

func (o *Orchestrator[T]) navigate(err error) error {
	switch {
	case err == nil:
		o.setStatus("")
	case errors.Is(err, pagination.ErrStale):
		return nil
	case errors.Is(err, pagination.ErrPageOutOfRange), errors.Is(err, pagination.ErrInvalidSize):
		o.setStatus(capitalize(err.Error()))
	default:
		o.setStatus(gateway.Message(err))
	}
	return err
}

// Find loads one record.
func (o *Orchestrator[T]) Find(ctx context.Context, id models.ID) (T, error) {
	rec, err := o.store.Find(ctx, id)
	return rec, o.report(err, "")
}

// Create validates rec, posts it and refreshes the list on success.
func (o *Orchestrator[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if errs := o.schema.Validate(rec, validation.ModeCreate); len(errs) > 0 {
		return zero, o.report(&validation.Error{Errors: errs}, "")
	}

	saved, err := o.store.Create(ctx, rec)
	if err := o.report(err, MsgCreated); err != nil {
		return zero, err
	}
	o.refresh(ctx)
	return saved, nil
}

// Update validates rec, puts it, refreshes the list and closes the active
// form on success.
func (o *Orchestrator[T]) Update(ctx context.Context, id models.ID, rec T) (T, error) {
	var zero T
	if errs := o.schema.Validate(rec, validation.ModeEdit); len(errs) > 0 {
		return zero, o.report(&validation.Error{Errors: errs}, "")
	}

	saved, err := o.store.Update(ctx, id, rec)
	if err := o.report(err, MsgUpdated); err != nil {
		return zero, err
	}
	o.refresh(ctx)
	o.form.Close()
	return saved, nil
}

// RequestDelete arms the delete gate for id. Only ConfirmDelete with the
// same id issues the call.
func (o *Orchestrator[T]) RequestDelete(id models.ID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pendingDelete = id
	o.status = fmt.Sprintf("Confirm deletion of record %s", id)
}

// PendingDelete returns the id awaiting confirmation.
func (o *Orchestrator[T]) PendingDelete() (models.ID, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pendingDelete, o.pendingDelete != ""
}

func (o *Orchestrator[T]) CancelDelete() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pendingDelete != "" {
		o.pendingDelete = ""
		o.status = MsgDeleteCancelled
	}
}

// ConfirmDelete deletes id if it is the pending request. The gate is
// disarmed whatever the outcome.
func (o *Orchestrator[T]) ConfirmDelete(ctx context.Context, id models.ID) error {
	o.mu.Lock()
	if o.pendingDelete == "" || o.pendingDelete != id {
		o.mu.Unlock()
		return ErrDeleteNotConfirmed
	}
	o.pendingDelete = ""
	o.mu.Unlock()

	if err := o.report(o.store.Delete(ctx, id), MsgDeleted); err != nil {
		return err
	}
	o.refresh(ctx)
	return nil
}

// OpenCreate opens an empty form.
func (o *Orchestrator[T]) OpenCreate() error {
	if err := o.form.OpenCreate(); err != nil {
		return err
	}
	o.setStatus("")
	return nil
}

// OpenEdit opens the form seeded with record id.
func (o *Orchestrator[T]) OpenEdit(ctx context.Context, id models.ID) error {
	err := o.form.OpenEdit(ctx, id, o.store.Find)
	if errors.Is(err, form.ErrBusy) {
		return err
	}
	return o.report(err, "")
}

// SubmitForm submits the active form. A successful create resets the form
// and refreshes the list once; a successful update refreshes and closes it.
func (o *Orchestrator[T]) SubmitForm(ctx context.Context) (T, error) {
	saved, err := o.form.Submit(ctx, o.send)
	if errors.Is(err, form.ErrNotOpen) || errors.Is(err, form.ErrBusy) {
		return saved, err
	}

	v := o.form.View()
	o.setStatus(v.Message)
	if err != nil {
		return saved, err
	}

	o.refresh(ctx)
	if v.Mode == validation.ModeEdit {
		o.form.Close()
	}
	return saved, nil
}

func (o *Orchestrator[T]) send(ctx context.Context, mode validation.Mode, id models.ID, rec T) (T, error) {
	if mode == validation.ModeEdit {
		return o.store.Update(ctx, id, rec)
	}
	return o.store.Create(ctx, rec)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
