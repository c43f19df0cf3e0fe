package forms

import (
	"fmt"

	"github.com/dmitrijs2005/copyit/internal/common"
)

var signInMessages = map[string]string{
	common.AuthInvalidCredential: "Invalid email or password.",
	common.AuthUserDisabled:      "This user account has been disabled.",
	common.AuthUserNotFound:      "No account found with this email.",
	common.AuthWrongPassword:     "Incorrect password. Please try again.",
	common.AuthInvalidEmail:      "Please enter a valid email address.",
}

var signUpMessages = map[string]string{
	common.AuthEmailAlreadyInUse:   "This email is already in use. Please sign in.",
	common.AuthWeakPassword:        "The password is too weak. Please use at least 6 characters.",
	common.AuthInvalidEmail:        "Please enter a valid email address.",
	common.AuthOperationNotAllowed: "Sign up is currently disabled. Please contact the server administrator.",
}

// SignInMessage maps an identity provider code to the text shown on the
// sign-in screen. Unknown codes are shown raw.
func SignInMessage(code string) string {
	if m, ok := signInMessages[code]; ok {
		return m
	}
	return fmt.Sprintf("An unexpected error occurred: %s", code)
}

// SignUpMessage is SignInMessage for the sign-up screen.
func SignUpMessage(code string) string {
	if m, ok := signUpMessages[code]; ok {
		return m
	}
	return fmt.Sprintf("An unexpected error occurred. (Code: %s)", code)
}
