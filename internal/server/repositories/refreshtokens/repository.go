// Package refreshtokens stores the opaque refresh tokens that back
// long-lived sessions.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/copyit/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
