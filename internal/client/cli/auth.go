package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/copyit/internal/client/forms"
	"github.com/dmitrijs2005/copyit/internal/client/services"
	"github.com/dmitrijs2005/copyit/internal/common"
)

// Input seams, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register creates an account and then moves to the sign-in prompt.
// Sign-up never signs the user in.
func (a *App) Register(ctx context.Context) error {
	ok, err := a.submitCredentials(ctx, forms.SignUp)
	if err != nil || !ok {
		return err
	}
	return a.Login(ctx)
}

// Login signs in. The session gate picks up the new principal.
func (a *App) Login(ctx context.Context) error {
	_, err := a.submitCredentials(ctx, forms.SignIn)
	return err
}

func (a *App) submitCredentials(ctx context.Context, mode forms.Mode) (bool, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return false, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(password)

	if mode == forms.SignUp {
		a.println("Creating Account...")
	} else {
		a.println("Signing In...")
	}

	res, err := forms.NewCredentialForm(mode, a.auth).Submit(ctx, email, string(password))
	if err != nil {
		return false, err
	}
	a.toast(res.Toast)
	return res.OK, nil
}

// Logout signs out. The stored session is dropped even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.SignOut(ctx)
	if err == nil {
		a.println("Signed out. Type \"login\" to sign in again.")
		return nil
	}
	if errors.Is(err, services.ErrBackendNotConfigured) {
		a.toast(forms.Toast{
			Title:       "Backend Not Configured",
			Description: "Signing out is not available in demo mode.",
			Destructive: true,
		})
		return err
	}
	a.failure("Could not sign out.")
	return err
}
