package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/copyit/internal/client/client"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/client/repositories/metadata"
)

var errBoom = errors.New("boom")

// fakeClient is a scripted client.Client.
type fakeClient struct {
	mu sync.Mutex

	signInSess *client.Session
	signInErr  error
	signUpErr  error
	signOutErr error
	refreshErr error
	refreshOut *client.Session
	pingErr    error

	lastRefresh string
	signOuts    int
	onRefresh   func(*client.Session)

	createErr error
	updateErr error
	deleteErr error
	exportURL string
	exportErr error

	created []string
	updated []string
	deleted []string

	watchErr error
	streams  []*fakeStream
}

func (f *fakeClient) Close() error                 { return nil }
func (f *fakeClient) Ping(context.Context) error   { return f.pingErr }
func (f *fakeClient) SetRefreshToken(token string) {}
func (f *fakeClient) OnRefresh(fn func(*client.Session)) {
	f.onRefresh = fn
}

func (f *fakeClient) SignUp(context.Context, string, string) error { return f.signUpErr }

func (f *fakeClient) SignIn(context.Context, string, string) (*client.Session, error) {
	return f.signInSess, f.signInErr
}

func (f *fakeClient) RefreshToken(_ context.Context, token string) (*client.Session, error) {
	f.lastRefresh = token
	return f.refreshOut, f.refreshErr
}

func (f *fakeClient) SignOut(context.Context) error {
	f.signOuts++
	return f.signOutErr
}

func (f *fakeClient) CreateEntry(_ context.Context, title, content string) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, title+"|"+content)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Entry{ID: "new", Title: title, Content: content}, nil
}

func (f *fakeClient) UpdateEntry(_ context.Context, id, title, content string) error {
	f.updated = append(f.updated, id+"|"+title+"|"+content)
	return f.updateErr
}

func (f *fakeClient) DeleteEntry(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeClient) WatchEntries(ctx context.Context) (client.EntryStream, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	s := f.streams[0]
	f.streams = f.streams[1:]
	s.ctx = ctx
	return s, nil
}

func (f *fakeClient) ExportEntries(context.Context) (string, string, error) {
	return "key", f.exportURL, f.exportErr
}

// fakeStream replays snaps, then err (io.EOF by default), or blocks until
// the context ends when block is set.
type fakeStream struct {
	ctx    context.Context
	snaps  [][]models.Entry
	err    error
	block  bool
	closed bool
	// beforeRecv runs at the start of every Recv.
	beforeRecv func()
}

func (s *fakeStream) Recv() ([]models.Entry, error) {
	if s.beforeRecv != nil {
		s.beforeRecv()
	}
	if len(s.snaps) > 0 {
		snap := s.snaps[0]
		s.snaps = s.snaps[1:]
		return snap, nil
	}
	if s.block {
		<-s.ctx.Done()
		return nil, s.ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, io.EOF
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeStore struct {
	stored   *metadata.StoredSession
	loadErr  error
	saveErr  error
	saved    []metadata.StoredSession
	rotated  []string
	cleared  int
	clearErr error
}

func (s *fakeStore) Load(context.Context) (*metadata.StoredSession, error) {
	return s.stored, s.loadErr
}

func (s *fakeStore) Save(_ context.Context, sess metadata.StoredSession) error {
	s.saved = append(s.saved, sess)
	return s.saveErr
}

func (s *fakeStore) SetRefreshToken(_ context.Context, token string) error {
	s.rotated = append(s.rotated, token)
	return nil
}

func (s *fakeStore) Clear(context.Context) error {
	s.cleared++
	s.stored = nil
	return s.clearErr
}
