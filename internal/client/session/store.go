package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/syspark/internal/dbx"
)

// Session is the persisted login.
type Session struct {
	Token     string
	Username  string
	Role      models.Role
	ExpiresAt time.Time
}

// Store persists at most one session.
type Store interface {
	Load(ctx context.Context) (Session, bool, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

var sessionKeys = []string{metadata.KeyToken, metadata.KeyUsername, metadata.KeyRole, metadata.KeyExpiresAt}

// SQLiteStore keeps the session in the metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns ok=false when no token is stored.
func (s *SQLiteStore) Load(ctx context.Context) (Session, bool, error) {
	values, err := metadata.NewSQLiteRepository(s.db).List(ctx, "session.")
	if err != nil {
		return Session{}, false, err
	}

	token := values[metadata.KeyToken]
	if token == "" {
		return Session{}, false, nil
	}

	sess := Session{Token: token, Username: values[metadata.KeyUsername]}
	if v := values[metadata.KeyRole]; v != "" {
		if role, err := models.ParseRole(v); err == nil {
			sess.Role = role
		}
	}
	if v := values[metadata.KeyExpiresAt]; v != "" {
		unix, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Session{}, false, fmt.Errorf("corrupt session expiry %q: %w", v, err)
		}
		sess.ExpiresAt = time.Unix(unix, 0)
	}
	return sess, true, nil
}

// Save replaces the stored session in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, sessionKeys...); err != nil {
			return err
		}

		values := map[string]string{
			metadata.KeyToken:    sess.Token,
			metadata.KeyUsername: sess.Username,
		}
		if sess.Role != 0 {
			values[metadata.KeyRole] = strconv.Itoa(int(sess.Role))
		}
		if !sess.ExpiresAt.IsZero() {
			values[metadata.KeyExpiresAt] = strconv.FormatInt(sess.ExpiresAt.Unix(), 10)
		}
		for k, v := range values {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, sessionKeys...)
	})
}

// MemoryStore keeps the session in process only.
type MemoryStore struct {
	sess *Session
}

func (m *MemoryStore) Load(context.Context) (Session, bool, error) {
	if m.sess == nil {
		return Session{}, false, nil
	}
	return *m.sess, true, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.sess = &s
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.sess = nil
	return nil
}
