// Package session routes the CLI between the credential screen and the
// entry screens as the signed-in principal changes.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/copyit/internal/client/models"
)

// Watcher is the identity provider's session change stream.
type Watcher interface {
	Watch(ctx context.Context) <-chan *models.Principal
}

// Gate listens for principal changes. Each signed-in principal gets its own
// context, cancelled when the principal changes, signs out or the gate
// stops, so whatever was started for the session is torn down with it.
type Gate struct {
	auth Watcher

	// OnSignedIn is called with the session context of a new principal.
	OnSignedIn func(ctx context.Context, p models.Principal)
	// OnSignedOut is called whenever no principal is present.
	OnSignedOut func()

	mu     sync.Mutex
	active *models.Principal
	cancel context.CancelFunc
}

func NewGate(auth Watcher) *Gate {
	return &Gate{auth: auth}
}

// Active returns the current principal, or nil.
func (g *Gate) Active() *models.Principal {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == nil {
		return nil
	}
	p := *g.active
	return &p
}

// Run blocks until ctx is done. The listener is detached on return.
func (g *Gate) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	defer g.end()

	for p := range g.auth.Watch(ctx) {
		if p == nil {
			g.end()
			if g.OnSignedOut != nil {
				g.OnSignedOut()
			}
			continue
		}

		if cur := g.Active(); cur != nil && *cur == *p {
			continue
		}
		g.end()

		sessCtx, cancel := context.WithCancel(ctx)
		g.mu.Lock()
		pp := *p
		g.active, g.cancel = &pp, cancel
		g.mu.Unlock()

		if g.OnSignedIn != nil {
			g.OnSignedIn(sessCtx, pp)
		}
	}
	return ctx.Err()
}

func (g *Gate) end() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	g.active, g.cancel = nil, nil
}
