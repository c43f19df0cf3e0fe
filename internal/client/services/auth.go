package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/copyit/internal/client/client"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/copyit/internal/logging"
)

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.Principal, error)
	// SignUp creates an account without signing in.
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	// Restore resumes a session persisted by an earlier run.
	Restore(ctx context.Context) error
	// Watch emits the current principal (nil when signed out) and every
	// change after it. The channel is closed once ctx is done.
	Watch(ctx context.Context) <-chan *models.Principal
	Current() *models.Principal
	Ping(ctx context.Context) error
	Close() error
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Load(ctx context.Context) (*metadata.StoredSession, error)
	Save(ctx context.Context, s metadata.StoredSession) error
	SetRefreshToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
	logger logging.Logger
	feed   *feed[*models.Principal]
}

func NewAuthService(c client.Client, store SessionStore, logger logging.Logger) AuthService {
	a := &authService{
		client: c,
		store:  store,
		logger: logger.With("module", "auth"),
		feed:   newFeed[*models.Principal](nil),
	}
	c.OnRefresh(func(s *client.Session) {
		if err := store.SetRefreshToken(context.Background(), s.RefreshToken); err != nil {
			a.logger.Warn(context.Background(), "could not persist rotated refresh token", "err", err)
		}
	})
	return a
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Principal, error) {
	sess, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.persist(ctx, sess)

	p := &models.Principal{UserID: sess.UserID, Email: sess.Email}
	a.feed.publish(p)
	return p, nil
}

func (a *authService) SignUp(ctx context.Context, email, password string) error {
	return a.client.SignUp(ctx, email, password)
}

// SignOut always ends the local session; a failed server revoke is only
// logged.
func (a *authService) SignOut(ctx context.Context) error {
	if err := a.client.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "refresh token revoke failed", "err", err)
	}
	err := a.store.Clear(ctx)
	a.feed.publish(nil)
	return err
}

// Restore rotates the stored refresh token. A rejected token clears the
// stored session; an unreachable server leaves it for the next run.
func (a *authService) Restore(ctx context.Context) error {
	stored, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}

	sess, err := a.client.RefreshToken(ctx, stored.RefreshToken)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			if cerr := a.store.Clear(ctx); cerr != nil {
				a.logger.Warn(ctx, "could not clear stored session", "err", cerr)
			}
		}
		return err
	}
	if sess.Email == "" {
		sess.Email = stored.Email
	}
	a.persist(ctx, sess)
	a.feed.publish(&models.Principal{UserID: sess.UserID, Email: sess.Email})
	return nil
}

func (a *authService) persist(ctx context.Context, sess *client.Session) {
	err := a.store.Save(ctx, metadata.StoredSession{
		UserID:       sess.UserID,
		Email:        sess.Email,
		RefreshToken: sess.RefreshToken,
	})
	if err != nil {
		a.logger.Warn(ctx, "could not persist session", "err", err)
	}
}

func (a *authService) Watch(ctx context.Context) <-chan *models.Principal {
	return watchFeed(ctx, a.feed)
}

func (a *authService) Current() *models.Principal {
	return a.feed.current()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}

func watchFeed[T any](ctx context.Context, f *feed[T]) <-chan T {
	ch, cancel := f.subscribe()
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch
}
