package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/copyit/internal/client/client"
	"github.com/dmitrijs2005/copyit/internal/client/config"
	"github.com/dmitrijs2005/copyit/internal/client/entrylist"
	"github.com/dmitrijs2005/copyit/internal/client/forms"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/copyit/internal/client/services"
	"github.com/dmitrijs2005/copyit/internal/client/session"
	"github.com/dmitrijs2005/copyit/internal/logging"
	"github.com/fatih/color"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeDemo    Mode = "demo"
)

// StoreFactory opens the entry store of a principal.
type StoreFactory func(p models.Principal) services.EntryService

type App struct {
	config   *config.Config
	auth     services.AuthService
	newStore StoreFactory
	list     *entrylist.Controller
	gate     *session.Gate
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	mock     bool
	closers  []func() error

	mu    sync.Mutex
	store services.EntryService
	mode  Mode
}

// NewApp wires the CLI. Without a server address it runs in demo mode
// against an in-memory store.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	if cfg.MockMode() {
		store := services.NewMemoryStore()
		a := newApp(cfg, services.NewMockAuthService(), func(models.Principal) services.EntryService {
			return store
		}, logger, os.Stdin, color.Output)
		a.mock = true
		a.mode = ModeDemo
		return a, nil
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	auth := services.NewAuthService(c, metadata.NewSessionStore(db), logger)
	a := newApp(cfg, auth, func(p models.Principal) services.EntryService {
		return services.NewEntryService(c, p, logger)
	}, logger, os.Stdin, color.Output)
	a.closers = append(a.closers, auth.Close, db.Close)
	return a, nil
}

func newApp(cfg *config.Config, auth services.AuthService, newStore StoreFactory, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:   cfg,
		auth:     auth,
		newStore: newStore,
		list:     entrylist.NewController(),
		logger:   logger.With("module", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
		mode:     ModeOffline,
	}
	a.gate = session.NewGate(auth)
	a.gate.OnSignedIn = a.signedIn
	a.gate.OnSignedOut = a.signedOut
	return a
}

// Run restores the previous session, starts the background watchers and
// blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close()
	defer cancel()

	a.println("Welcome to CopyIt. Type \"help\" for commands.")
	if a.mock {
		a.toast(forms.Toast{
			Title:       "Demo Mode",
			Description: "No server address configured. Entries are kept in memory only.",
		})
	}

	if err := a.auth.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "err", err)
	}

	go func() { _ = a.gate.Run(ctx) }()
	if !a.mock {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "err", err)
		}
	}
}

// signedIn opens the principal's store and follows it until sessCtx ends.
func (a *App) signedIn(sessCtx context.Context, p models.Principal) {
	store := a.newStore(p)
	gen := a.list.Open(p.UserID)
	a.setStore(store)
	go a.follow(sessCtx, store, gen)
}

func (a *App) signedOut() {
	a.setStore(nil)
	a.list.Reset()
}

// follow feeds snapshots of one session into the list. The list drops
// them once the session's generation is over.
func (a *App) follow(ctx context.Context, store services.EntryService, gen uint64) {
	for entries, err := range store.Subscribe(ctx) {
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			a.failure(persistenceMessage(err))
			return
		}
		a.list.SetEntries(gen, entries)
	}
}

func (a *App) setStore(s services.EntryService) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store = s
}

func (a *App) currentStore() services.EntryService {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store
}

func (a *App) isLoggedIn() bool {
	return a.currentStore() != nil
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

// status is shown in the prompt.
func (a *App) status() string {
	who := "signed out"
	if p := a.gate.Active(); p != nil {
		who = p.Email
	}
	return fmt.Sprintf("%s (%s)", who, a.currentMode())
}

// StartOnlineStatusWatcher pings the server every interval and switches
// between online and offline mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
