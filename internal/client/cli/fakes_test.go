package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/copyit/internal/client/config"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/client/services"
	"github.com/dmitrijs2005/copyit/internal/logging"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

var errBoom = errors.New("boom")

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

type fakeAuth struct {
	mu        sync.Mutex
	principal *models.Principal
	subs      []chan *models.Principal

	signInErr  error
	signUpErr  error
	signOutErr error
	pingErr    error
	signIns    []string
	signUps    []string
}

func (f *fakeAuth) publish(p *models.Principal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.principal = p
	for _, ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- p
	}
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (*models.Principal, error) {
	f.mu.Lock()
	f.signIns = append(f.signIns, email)
	err := f.signInErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	p := &models.Principal{UserID: "u-" + email, Email: email}
	f.publish(p)
	return p, nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps = append(f.signUps, email)
	return f.signUpErr
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.publish(nil)
	return f.signOutErr
}

func (f *fakeAuth) Restore(context.Context) error { return nil }

func (f *fakeAuth) Watch(ctx context.Context) <-chan *models.Principal {
	f.mu.Lock()
	ch := make(chan *models.Principal, 1)
	ch <- f.principal
	f.subs = append(f.subs, ch)
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, c := range f.subs {
			if c == ch {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}

func (f *fakeAuth) Current() *models.Principal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.principal
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }
func (f *fakeAuth) Close() error               { return nil }

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) Subscribe(context.Context) iter.Seq2[[]models.Entry, error] {
	return func(yield func([]models.Entry, error) bool) {
		yield(nil, &services.PersistenceError{Op: services.OpFetch, Err: errBoom})
	}
}

func (brokenStore) Create(context.Context, string, string) error {
	return &services.PersistenceError{Op: services.OpSave, Err: errBoom}
}

func (brokenStore) Update(context.Context, string, string, string) error {
	return &services.PersistenceError{Op: services.OpSave, Err: errBoom}
}

func (brokenStore) Delete(context.Context, string) error {
	return &services.PersistenceError{Op: services.OpDelete, Err: errBoom}
}

func (brokenStore) Export(context.Context) (string, error) {
	return "", &services.PersistenceError{Op: services.OpExport, Err: errBoom}
}

// newTestApp builds an App over auth and store with the session gate
// running until the test ends.
func newTestApp(t *testing.T, auth services.AuthService, store services.EntryService, input string) (*App, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	a := newApp(&config.Config{OnlineCheckInterval: time.Second}, auth, func(models.Principal) services.EntryService {
		return store
	}, logging.Nop{}, strings.NewReader(input), out)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = a.gate.Run(ctx) }()
	return a, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(w io.Writer) ([]byte, error) { return []byte(pw), nil }
}
