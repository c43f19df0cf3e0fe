// Package metadata is the client's key/value table in the local SQLite
// database. The signed-in session is persisted here between runs.
package metadata

import "context"

// Keys of the persisted session.
const (
	KeyUserID       = "user_id"
	KeyEmail        = "email"
	KeyRefreshToken = "refresh_token"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
