package services

import (
	"context"
	"errors"
	"iter"

	"github.com/dmitrijs2005/copyit/internal/client/client"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/common"
	"github.com/dmitrijs2005/copyit/internal/logging"
)

// EntryService is the entry store seen by one principal.
type EntryService interface {
	// Subscribe yields a full snapshot of the principal's entries on every
	// change. Each range opens its own subscription. A failure is yielded
	// once as a *PersistenceError and ends the sequence.
	Subscribe(ctx context.Context) iter.Seq2[[]models.Entry, error]
	Create(ctx context.Context, title, content string) error
	// Update fails with a *PersistenceError wrapping common.ErrorNotFound
	// when the entry is gone.
	Update(ctx context.Context, id, title, content string) error
	// Delete succeeds when the entry is already absent.
	Delete(ctx context.Context, id string) error
	// Export returns a download link for all of the principal's entries.
	Export(ctx context.Context) (string, error)
}

// EntryClient is the part of client.Client used for entries.
type EntryClient interface {
	CreateEntry(ctx context.Context, title, content string) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id, title, content string) error
	DeleteEntry(ctx context.Context, id string) error
	WatchEntries(ctx context.Context) (client.EntryStream, error)
	ExportEntries(ctx context.Context) (key, url string, err error)
}

type entryService struct {
	client    EntryClient
	principal models.Principal
	logger    logging.Logger
}

func NewEntryService(c EntryClient, p models.Principal, logger logging.Logger) EntryService {
	return &entryService{client: c, principal: p, logger: logger.With("module", "entries", "user_id", p.UserID)}
}

func (s *entryService) fail(ctx context.Context, op string, err error) error {
	s.logger.Warn(ctx, "entry store call failed", "op", op, "err", err)
	return &PersistenceError{Op: op, Err: err}
}

func (s *entryService) Subscribe(ctx context.Context) iter.Seq2[[]models.Entry, error] {
	return func(yield func([]models.Entry, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := s.client.WatchEntries(ctx)
		if err != nil {
			if ctx.Err() == nil {
				yield(nil, s.fail(ctx, OpFetch, err))
			}
			return
		}
		defer stream.Close()

		for {
			entries, err := stream.Recv()
			if err != nil {
				if ctx.Err() == nil {
					yield(nil, s.fail(ctx, OpFetch, err))
				}
				return
			}
			// a snapshot received during teardown is dropped
			if ctx.Err() != nil {
				return
			}
			if !yield(ownedBy(entries, s.principal.UserID), nil) {
				return
			}
		}
	}
}

func (s *entryService) Create(ctx context.Context, title, content string) error {
	if _, err := s.client.CreateEntry(ctx, title, content); err != nil {
		return s.fail(ctx, OpSave, err)
	}
	return nil
}

func (s *entryService) Update(ctx context.Context, id, title, content string) error {
	if err := s.client.UpdateEntry(ctx, id, title, content); err != nil {
		return s.fail(ctx, OpSave, err)
	}
	return nil
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	err := s.client.DeleteEntry(ctx, id)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return s.fail(ctx, OpDelete, err)
}

func (s *entryService) Export(ctx context.Context) (string, error) {
	_, url, err := s.client.ExportEntries(ctx)
	if err != nil {
		return "", s.fail(ctx, OpExport, err)
	}
	return url, nil
}

// ownedBy drops entries of any other owner.
func ownedBy(entries []models.Entry, userID string) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
