package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/copyit/internal/dbx"
)

// StoredSession is what survives a restart of the CLI.
type StoredSession struct {
	UserID       string
	Email        string
	RefreshToken string
}

// SessionStore keeps one StoredSession in the metadata table.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns nil when no complete session is stored.
func (s *SessionStore) Load(ctx context.Context) (*StoredSession, error) {
	all, err := NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	sess := &StoredSession{
		UserID:       string(all[KeyUserID]),
		Email:        string(all[KeyEmail]),
		RefreshToken: string(all[KeyRefreshToken]),
	}
	if sess.UserID == "" || sess.RefreshToken == "" {
		return nil, nil
	}
	return sess, nil
}

// Save replaces the stored session atomically.
func (s *SessionStore) Save(ctx context.Context, sess StoredSession) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for k, v := range map[string]string{
			KeyUserID:       sess.UserID,
			KeyEmail:        sess.Email,
			KeyRefreshToken: sess.RefreshToken,
		} {
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetRefreshToken replaces only the rotated refresh token.
func (s *SessionStore) SetRefreshToken(ctx context.Context, token string) error {
	return NewSQLiteRepository(s.db).Set(ctx, KeyRefreshToken, []byte(token))
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return NewSQLiteRepository(s.db).Clear(ctx)
}
