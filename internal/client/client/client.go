package client

import (
	"context"

	"github.com/dmitrijs2005/copyit/internal/client/models"
)

// Session is what the client keeps after a successful sign-in. The access
// token stays inside the transport.
type Session struct {
	UserID       string
	Email        string
	RefreshToken string
}

// EntryStream delivers full snapshots of the caller's entries. The first
// Recv returns the snapshot current at subscription time.
type EntryStream interface {
	Recv() ([]models.Entry, error)
	Close() error
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context) error
	SetRefreshToken(token string)
	// OnRefresh registers fn to be called after every token rotation.
	OnRefresh(fn func(*Session))

	CreateEntry(ctx context.Context, title, content string) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id, title, content string) error
	DeleteEntry(ctx context.Context, id string) error
	WatchEntries(ctx context.Context) (EntryStream, error)
	ExportEntries(ctx context.Context) (key, url string, err error)
}
