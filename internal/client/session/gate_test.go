package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanWatcher hands out one channel and closes it when ctx ends.
type chanWatcher struct {
	ch       chan *models.Principal
	detached chan struct{}
}

func newChanWatcher() *chanWatcher {
	return &chanWatcher{ch: make(chan *models.Principal), detached: make(chan struct{})}
}

func (w *chanWatcher) Watch(ctx context.Context) <-chan *models.Principal {
	out := make(chan *models.Principal)
	go func() {
		defer close(w.detached)
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p := <-w.ch:
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

type recorder struct {
	mu       sync.Mutex
	events   []string
	sessions []context.Context
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newGate(w Watcher, r *recorder) *Gate {
	g := NewGate(w)
	g.OnSignedIn = func(ctx context.Context, p models.Principal) {
		r.mu.Lock()
		r.sessions = append(r.sessions, ctx)
		r.mu.Unlock()
		r.add("in:" + p.UserID)
	}
	g.OnSignedOut = func() { r.add("out") }
	return g
}

func TestGate_RoutesOnPrincipalChanges(t *testing.T) {
	w := newChanWatcher()
	r := &recorder{}
	g := newGate(w, r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	alice := &models.Principal{UserID: "u1", Email: "a@b.c"}
	w.ch <- nil
	w.ch <- alice
	w.ch <- alice
	w.ch <- nil

	require.Eventually(t, func() bool { return len(r.snapshot()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"out", "in:u1", "out"}, r.snapshot())
	assert.Nil(t, g.Active())

	r.mu.Lock()
	sessCtx := r.sessions[0]
	r.mu.Unlock()
	assert.Error(t, sessCtx.Err(), "session context must end on sign-out")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("gate did not stop")
	}
	<-w.detached
}

func TestGate_StopCancelsActiveSession(t *testing.T) {
	w := newChanWatcher()
	r := &recorder{}
	g := newGate(w, r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	w.ch <- &models.Principal{UserID: "u1"}
	require.Eventually(t, func() bool { return g.Active() != nil }, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	r.mu.Lock()
	sessCtx := r.sessions[0]
	r.mu.Unlock()
	assert.Error(t, sessCtx.Err())
	assert.Nil(t, g.Active())
}

func TestGate_SwitchingUserStartsNewSession(t *testing.T) {
	w := newChanWatcher()
	r := &recorder{}
	g := newGate(w, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = g.Run(ctx) }()

	w.ch <- &models.Principal{UserID: "u1"}
	w.ch <- &models.Principal{UserID: "u2"}

	require.Eventually(t, func() bool { return len(r.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"in:u1", "in:u2"}, r.snapshot())

	r.mu.Lock()
	first, second := r.sessions[0], r.sessions[1]
	r.mu.Unlock()
	assert.Error(t, first.Err())
	assert.NoError(t, second.Err())
	assert.Equal(t, "u2", g.Active().UserID)
}
