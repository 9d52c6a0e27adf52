// Package session is the identity provider of the admin client. It logs in
// against the API, persists the bearer token and hands it to the gateway
// through the TokenSource interface.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/common"
	"github.com/dmitrijs2005/syspark/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultMaxAge bounds sessions whose token carries no readable expiry.
const DefaultMaxAge = 2 * time.Hour

// ErrNotLoggedIn is returned by operations that need a session.
var ErrNotLoggedIn = common.ErrorNotLoggedIn

type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Authenticator exchanges credentials for a token. *gateway.Client
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)
}

type Provider struct {
	mu sync.RWMutex

	auth  Authenticator
	store Store
	log   logging.Logger
	now   func() time.Time

	status  Status
	session Session
}

type Option func(*Provider)

func WithLogger(l logging.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProvider returns a provider in the loading state; call Restore to
// settle it.
func NewProvider(auth Authenticator, store Store, opts ...Option) *Provider {
	if store == nil {
		store = &MemoryStore{}
	}
	p := &Provider{
		auth:   auth,
		store:  store,
		log:    logging.Discard(),
		now:    time.Now,
		status: StatusLoading,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Restore loads a persisted session. Expired sessions are dropped.
func (p *Provider) Restore(ctx context.Context) error {
	sess, ok, err := p.store.Load(ctx)
	if err != nil {
		p.setUnauthenticated()
		return err
	}
	if !ok {
		p.setUnauthenticated()
		return nil
	}
	if p.expired(sess) {
		p.log.Info(ctx, "stored session expired", "username", sess.Username)
		p.setUnauthenticated()
		return p.store.Clear(ctx)
	}

	p.mu.Lock()
	p.session = sess
	p.status = StatusAuthenticated
	p.mu.Unlock()
	return nil
}

// Login authenticates and persists the new session. On failure the
// previous state is kept.
func (p *Provider) Login(ctx context.Context, username, password string) error {
	resp, err := p.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		p.log.Warn(ctx, "login failed", "username", username, "error", err)
		return err
	}

	sess := Session{
		Token:     strings.TrimSpace(resp.AccessToken),
		Username:  resp.Username,
		Role:      resp.Role,
		ExpiresAt: expiryOf(resp.AccessToken, p.now()),
	}
	if sess.Username == "" {
		sess.Username = username
	}

	if err := p.store.Save(ctx, sess); err != nil {
		return err
	}

	p.mu.Lock()
	p.session = sess
	p.status = StatusAuthenticated
	p.mu.Unlock()

	p.log.Info(ctx, "logged in", "username", sess.Username, "expires_at", sess.ExpiresAt)
	return nil
}

// Logout forgets the session locally and in the store.
func (p *Provider) Logout(ctx context.Context) error {
	p.setUnauthenticated()
	return p.store.Clear(ctx)
}

// Status reports the session state. An expired session reads as
// unauthenticated.
func (p *Provider) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.status == StatusAuthenticated && p.expired(p.session) {
		return StatusUnauthenticated
	}
	return p.status
}

// Token returns the bearer token, or "" when not authenticated.
func (p *Provider) Token(context.Context) string {
	if p.Status() != StatusAuthenticated {
		return ""
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session.Token
}

func (p *Provider) Username() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.status != StatusAuthenticated {
		return ""
	}
	return p.session.Username
}

// Session returns a copy of the current session.
func (p *Provider) Session() (Session, error) {
	if p.Status() != StatusAuthenticated {
		return Session{}, ErrNotLoggedIn
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session, nil
}

func (p *Provider) setUnauthenticated() {
	p.mu.Lock()
	p.session = Session{}
	p.status = StatusUnauthenticated
	p.mu.Unlock()
}

func (p *Provider) expired(s Session) bool {
	return !s.ExpiresAt.IsZero() && !p.now().Before(s.ExpiresAt)
}

// expiryOf reads the exp claim without verifying the signature; the
// client never holds the signing key and the server re-checks every call.
func expiryOf(token string, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(DefaultMaxAge)
}
