package gateway

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/syspark/internal/common"
	"github.com/dmitrijs2005/syspark/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_NormalisesBaseURL(t *testing.T) {
	c, err := New(" localhost:8080/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())

	c, err = New("https://api.example")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example", c.BaseURL())

	_, err = New("")
	require.Error(t, err)

	_, err = New("http://")
	require.Error(t, err)
}

func TestNew_Options(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c, err := New("http://x", WithHTTPClient(custom), WithTimeout(2*time.Second), WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
}

func TestDo_AttachesHeadersAndBody(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	res := c.Do(context.Background(), Request{
		Method: http.MethodPost, Path: "/users", Body: map[string]string{"username": "jdoe"}, Token: " tok ",
	})

	require.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"ok":true}`, string(res.Data))

	assert.Equal(t, "/api/users", got.URL.Path)
	assert.Equal(t, "Bearer tok", got.Header.Get(common.AuthorizationHeaderName))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get(common.RequestIDHeaderName))
	assert.JSONEq(t, `{"username":"jdoe"}`, string(gotBody))
}

func TestDo_OmitsAuthorizationWithoutToken(t *testing.T) {
	var headers http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	})

	for _, token := range []string{"", "   "} {
		res := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "users", Token: token})
		require.True(t, res.Success)
		_, present := headers[common.AuthorizationHeaderName]
		assert.False(t, present, "token %q must not produce a header", token)
		assert.Empty(t, headers.Get("Content-Type"))
	}
}

func TestDo_ClassifiesStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
		target error
	}{
		{http.StatusUnauthorized, KindUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, KindUnauthorized, ErrUnauthorized},
		{http.StatusUnprocessableEntity, KindConflict, ErrConflict},
		{http.StatusNotFound, KindNotFound, ErrNotFound},
		{http.StatusInternalServerError, KindUnclassified, ErrUnclassified},
		{http.StatusBadRequest, KindUnclassified, ErrUnclassified},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			res := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "users"})
			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.status, res.Status)

			err := res.AsError()
			require.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestDo_TransportUnreachableIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	var buf bytes.Buffer
	c, err := New(url, WithLogger(logging.New("debug", &buf)))
	require.NoError(t, err)

	res := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "users"})
	assert.False(t, res.Success)
	assert.Equal(t, KindTransportUnreachable, res.Kind)
	require.ErrorIs(t, res.AsError(), ErrUnreachable)
	assert.Contains(t, buf.String(), "api unreachable")
}

func TestDo_SingleAttempt(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	res := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "users"})
	assert.False(t, res.Success)
	assert.Equal(t, 1, calls)
}

func TestDo_UnencodableBody(t *testing.T) {
	c, err := New("http://localhost:1")
	require.NoError(t, err)

	res := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "users", Body: make(chan int)})
	assert.Equal(t, KindUnclassified, res.Kind)
}

func TestResult_DecodeMalformed(t *testing.T) {
	res := Result{Success: true, Status: 200, Data: []byte(`{not json`)}
	var v map[string]any
	err := res.Decode(&v)
	require.ErrorIs(t, err, ErrUnclassified)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, MsgUnauthorized, Message(&Error{Kind: KindUnauthorized}))
	assert.Equal(t, MsgConflict, Message(&Error{Kind: KindConflict}))
	assert.Equal(t, MsgNotFound, Message(&Error{Kind: KindNotFound}))
	assert.Equal(t, MsgUnreachable, Message(&Error{Kind: KindTransportUnreachable}))
	assert.Equal(t, MsgUnclassified, Message(errors.New("boom")))
	assert.Equal(t, MsgInvalidForm, Message(common.ErrorValidation))
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "api conflict (status 422)", (&Error{Kind: KindConflict, Status: 422}).Error())
	assert.True(t, strings.HasPrefix((&Error{Kind: KindTransportUnreachable, Err: errors.New("refused")}).Error(), "api transport_unreachable"))
	assert.Equal(t, "api not_found", (&Error{Kind: KindNotFound}).Error())
}
