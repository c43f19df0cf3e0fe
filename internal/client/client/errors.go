package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/copyit/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthError is an identity provider failure. Code is one of the
// common.Auth* codes or any other "auth/..." string the server sent.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return e.Code
}

// mapError converts a gRPC status into the package's error values. For
// sign-in and sign-up an unreachable server is reported as an AuthError
// so the credential form can show it like any other provider code.
func mapError(err error, authCall bool) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	if strings.HasPrefix(st.Message(), "auth/") {
		return &AuthError{Code: st.Message()}
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		if authCall {
			return &AuthError{Code: common.AuthNetworkRequestFail}
		}
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}
