// Package entries stores clipboard records. Every query is scoped to the
// owning user.
package entries

import (
	"context"

	"github.com/dmitrijs2005/copyit/internal/server/models"
)

type Repository interface {
	// Create inserts entry and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	// Update replaces title and content. It returns common.ErrorNotFound
	// when no entry with id belongs to userID.
	Update(ctx context.Context, userID, id, title, content string) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, id string) (bool, error)
	// ListByUser returns the owner's entries in no particular order.
	ListByUser(ctx context.Context, userID string) ([]*models.Entry, error)
}
