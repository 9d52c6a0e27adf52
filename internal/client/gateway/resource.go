package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/syspark/internal/client/models"
)

// TokenSource yields the current bearer token, or "" when there is none.
// The gateway only reads it; storing and refreshing belong to the session.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

// Resource is the REST surface of one record type under /api/<path>:
//
//	GET    /<path>?size=&page=   list
//	GET    /<path>/find?id=      find
//	POST   /<path>               create
//	PUT    /<path>?id=           update
//	DELETE /<path>?id=           delete
type Resource[T any] struct {
	client *Client
	path   string
	tokens TokenSource
}

func NewResource[T any](c *Client, path string, tokens TokenSource) *Resource[T] {
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Resource[T]{client: c, path: strings.Trim(path, "/"), tokens: tokens}
}

// Path returns the resource path relative to /api.
func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) do(ctx context.Context, method, path string, q url.Values, body any) Result {
	return r.client.Do(ctx, Request{
		Method: method,
		Path:   path,
		Query:  q,
		Body:   body,
		Token:  r.tokens.Token(ctx),
	})
}

func idQuery(id models.ID) url.Values {
	return url.Values{"id": {string(id)}}
}

// List fetches one page. page is zero-based.
func (r *Resource[T]) List(ctx context.Context, page, size int) (models.Page[T], error) {
	q := url.Values{"size": {strconv.Itoa(size)}, "page": {strconv.Itoa(page)}}

	var p models.Page[T]
	if err := r.do(ctx, http.MethodGet, r.path, q, nil).Decode(&p); err != nil {
		return models.Page[T]{}, err
	}
	if p.Size == 0 {
		p.Size = size
	}
	return p.Normalize(), nil
}

func (r *Resource[T]) Find(ctx context.Context, id models.ID) (T, error) {
	var rec T
	if id == "" {
		return rec, &Error{Kind: KindNotFound}
	}
	if err := r.do(ctx, http.MethodGet, r.path+"/find", idQuery(id), nil).Decode(&rec); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	if err := decodeOptional(r.do(ctx, http.MethodPost, r.path, nil, rec), &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id models.ID, rec T) (T, error) {
	var out T
	if id == "" {
		return out, &Error{Kind: KindNotFound}
	}
	if err := decodeOptional(r.do(ctx, http.MethodPut, r.path, idQuery(id), rec), &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id models.ID) error {
	if id == "" {
		return &Error{Kind: KindNotFound}
	}
	return r.do(ctx, http.MethodDelete, r.path, idQuery(id), nil).AsError()
}

// decodeOptional tolerates an empty 2xx body on mutations.
func decodeOptional(res Result, v any) error {
	if res.Success && len(strings.TrimSpace(string(res.Data))) == 0 {
		return nil
	}
	return res.Decode(v)
}
