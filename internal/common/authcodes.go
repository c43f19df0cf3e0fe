package common

// Identity provider error codes. They travel over the wire as the status
// message and are mapped to user-facing text by the client.
const (
	AuthInvalidCredential   = "auth/invalid-credential"
	AuthUserDisabled        = "auth/user-disabled"
	AuthUserNotFound        = "auth/user-not-found"
	AuthWrongPassword       = "auth/wrong-password"
	AuthInvalidEmail        = "auth/invalid-email"
	AuthEmailAlreadyInUse   = "auth/email-already-in-use"
	AuthWeakPassword        = "auth/weak-password"
	AuthOperationNotAllowed = "auth/operation-not-allowed"
	AuthNetworkRequestFail  = "auth/network-request-failed"
	AuthInternalError       = "auth/internal-error"
)

// AuthCodeError carries one of the identity provider codes above.
type AuthCodeError struct {
	Code string
}

func (e *AuthCodeError) Error() string {
	return e.Code
}

// NewAuthError returns an *AuthCodeError for code.
func NewAuthError(code string) error {
	return &AuthCodeError{Code: code}
}
