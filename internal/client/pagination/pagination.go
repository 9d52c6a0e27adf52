// Package pagination implements the paginated list controller.
//
// Every fetch takes a generation number; a response is applied only while
// its generation is still the latest, so a slow response can never
// overwrite a newer one regardless of network completion order.
package pagination

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/syspark/internal/client/gateway"
	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/logging"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 5

var (
	ErrPageOutOfRange = errors.New("page out of range")
	ErrInvalidSize    = errors.New("page size must be positive")
	// ErrStale is returned by a fetch whose response was superseded by a
	// newer fetch and therefore discarded.
	ErrStale = errors.New("response superseded by a newer request")
)

// Lister fetches one zero-based page.
type Lister[T any] interface {
	List(ctx context.Context, page, size int) (models.Page[T], error)
}

// View is a consistent snapshot of the list.
type View[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
	Loading       bool
	Loaded        bool
	Message       string
}

// HasNext reports whether a following page exists.
func (v View[T]) HasNext() bool { return v.Page+1 < v.TotalPages }

// HasPrev reports whether a preceding page exists.
func (v View[T]) HasPrev() bool { return v.Page > 0 }

type Controller[T any] struct {
	mu sync.Mutex

	lister Lister[T]
	log    logging.Logger

	gen uint64

	content       []T
	page          int
	size          int
	totalPages    int
	totalElements int
	loading       bool
	loaded        bool
	message       string
}

type Option[T any] func(*Controller[T])

func WithPageSize[T any](n int) Option[T] {
	return func(c *Controller[T]) {
		if n > 0 {
			c.size = n
		}
	}
}

func WithLogger[T any](l logging.Logger) Option[T] {
	return func(c *Controller[T]) {
		if l != nil {
			c.log = l
		}
	}
}

func New[T any](lister Lister[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		lister:  lister,
		log:     logging.Discard(),
		size:    DefaultPageSize,
		content: []T{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch loads the current page.
func (c *Controller[T]) Fetch(ctx context.Context) error {
	c.mu.Lock()
	page, size := c.page, c.size
	c.mu.Unlock()
	return c.fetch(ctx, page, size)
}

// Refresh re-fetches the current page. It is the trigger used after
// mutations.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	return c.Fetch(ctx)
}

// SessionChanged re-fetches after the bearer credential changed.
func (c *Controller[T]) SessionChanged(ctx context.Context) error {
	return c.Fetch(ctx)
}

// SetPage fetches page p. Once the total is known, an index outside
// [0, totalPages) is rejected without a call. Page 0 is always allowed.
func (c *Controller[T]) SetPage(ctx context.Context, p int) error {
	c.mu.Lock()
	if p < 0 || (p > 0 && c.loaded && p >= c.totalPages) {
		c.mu.Unlock()
		return ErrPageOutOfRange
	}
	size := c.size
	c.mu.Unlock()
	return c.fetch(ctx, p, size)
}

func (c *Controller[T]) Next(ctx context.Context) error {
	c.mu.Lock()
	p := c.page + 1
	c.mu.Unlock()
	return c.SetPage(ctx, p)
}

func (c *Controller[T]) Prev(ctx context.Context) error {
	c.mu.Lock()
	p := c.page - 1
	c.mu.Unlock()
	return c.SetPage(ctx, p)
}

// SetSize changes the page size and goes back to the first page.
func (c *Controller[T]) SetSize(ctx context.Context, n int) error {
	if n <= 0 {
		return ErrInvalidSize
	}
	return c.fetch(ctx, 0, n)
}

func (c *Controller[T]) fetch(ctx context.Context, page, size int) error {
	stepped := false
	for {
		c.mu.Lock()
		c.gen++
		gen := c.gen
		if !c.loaded {
			c.loading = true
		}
		c.mu.Unlock()

		p, err := c.lister.List(ctx, page, size)

		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			c.log.Debug(ctx, "discarding stale page", "page", page, "generation", gen)
			return ErrStale
		}

		if err != nil {
			c.loading = false
			c.message = gateway.Message(err)
			c.mu.Unlock()
			return err
		}

		// The page emptied under us (e.g. its last row was deleted): step
		// back to the new last page once.
		if !stepped && page > 0 && len(p.Content) == 0 && page >= p.TotalPages {
			stepped = true
			page = max(p.TotalPages-1, 0)
			c.mu.Unlock()
			continue
		}

		c.content = p.Content
		c.page = page
		c.size = size
		c.totalPages = p.TotalPages
		c.totalElements = p.TotalElements
		c.loading = false
		c.loaded = true
		c.message = ""
		c.mu.Unlock()
		return nil
	}
}

func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View[T]{
		Content:       slices.Clone(c.content),
		Page:          c.page,
		Size:          c.size,
		TotalPages:    c.totalPages,
		TotalElements: c.totalElements,
		Loading:       c.loading,
		Loaded:        c.loaded,
		Message:       c.message,
	}
}
