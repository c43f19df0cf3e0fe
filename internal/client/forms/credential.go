package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/copyit/internal/client/client"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/client/services"
	"github.com/dmitrijs2005/copyit/internal/common"
)

type Mode int

const (
	SignIn Mode = iota
	SignUp
)

// ErrBusy is returned when a submit arrives while another is in flight.
var ErrBusy = errors.New("request already in flight")

// Authenticator is the identity provider as seen by the form.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.Principal, error)
	SignUp(ctx context.Context, email, password string) error
}

// Result is the outcome of one submit. Principal is set after a
// successful sign-in; sign-up never yields one.
type Result struct {
	OK        bool
	Principal *models.Principal
	Toast     Toast
}

type CredentialForm struct {
	mode Mode
	auth Authenticator

	mu   sync.Mutex
	busy bool
}

func NewCredentialForm(mode Mode, auth Authenticator) *CredentialForm {
	return &CredentialForm{mode: mode, auth: auth}
}

func (f *CredentialForm) Mode() Mode { return f.mode }

// Busy reports whether a submit is in flight. Input is disabled meanwhile.
func (f *CredentialForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *CredentialForm) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *CredentialForm) release() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

// Submit calls the identity provider. Failures come back as a
// destructive toast in Result, never as an error; ErrBusy is the only
// error.
func (f *CredentialForm) Submit(ctx context.Context, email, password string) (Result, error) {
	if !f.acquire() {
		return Result{}, ErrBusy
	}
	defer f.release()

	if f.mode == SignUp {
		err := f.auth.SignUp(ctx, email, password)
		if err != nil {
			return Result{Toast: f.failure(err)}, nil
		}
		return Result{OK: true, Toast: Toast{
			Title:       "Account Created",
			Description: "You have successfully signed up. Redirecting to sign in...",
		}}, nil
	}

	p, err := f.auth.SignIn(ctx, email, password)
	if err != nil {
		return Result{Toast: f.failure(err)}, nil
	}
	return Result{OK: true, Principal: p, Toast: Toast{
		Title:       "Signed In",
		Description: "Welcome back, " + p.Email + ".",
	}}, nil
}

func (f *CredentialForm) failure(err error) Toast {
	if errors.Is(err, services.ErrBackendNotConfigured) {
		what := "sign in"
		if f.mode == SignUp {
			what = "create an account"
		}
		return Toast{
			Title:       "Backend Not Configured",
			Description: "Please provide a server address to " + what + ".",
			Destructive: true,
		}
	}

	code := common.AuthInternalError
	var ae *client.AuthError
	if errors.As(err, &ae) {
		code = ae.Code
	}

	if f.mode == SignUp {
		return Toast{Title: "Sign Up Error", Description: SignUpMessage(code), Destructive: true}
	}
	return Toast{Title: "Authentication Error", Description: SignInMessage(code), Destructive: true}
}
