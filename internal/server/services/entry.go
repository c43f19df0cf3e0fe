package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/copyit/internal/common"
	"github.com/dmitrijs2005/copyit/internal/logging"
	sc "github.com/dmitrijs2005/copyit/internal/server/config"
	"github.com/dmitrijs2005/copyit/internal/server/models"
	"github.com/dmitrijs2005/copyit/internal/server/notify"
	"github.com/dmitrijs2005/copyit/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ErrEmptyField is returned when a title or content is blank.
var ErrEmptyField = errors.New("title and content are required")

// Notifier announces that an owner's entries changed.
type Notifier interface {
	Notify(ctx context.Context, userID string) error
}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	hub         *notify.Hub
	notifier    Notifier
	logger      logging.Logger
}

func NewEntryService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config,
	hub *notify.Hub, notifier Notifier, logger logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		hub:         hub,
		notifier:    notifier,
		logger:      logger.With("module", "entry_service"),
	}
}

// checkFields requires non-empty title and content. Whitespace counts as
// content, matching the client editor and the table constraint.
func checkFields(title, content string) error {
	if title == "" || content == "" {
		return ErrEmptyField
	}
	return nil
}

// validID reports whether id can name a stored entry.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *EntryService) changed(ctx context.Context, userID string) {
	if err := s.notifier.Notify(ctx, userID); err != nil {
		s.logger.Warn(ctx, "change notification failed", "user_id", userID, "error", err)
	}
}

// Create stores a new entry owned by userID; the store assigns the id
// and creation time.
func (s *EntryService) Create(ctx context.Context, userID, title, content string) (*models.Entry, error) {
	if err := checkFields(title, content); err != nil {
		return nil, err
	}

	entry, err := s.repomanager.Entries(s.db).Create(ctx, &models.Entry{UserID: userID, Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	s.changed(ctx, userID)
	return entry, nil
}

// Update replaces title and content. A missing entry, or one owned by
// somebody else, yields common.ErrorNotFound.
func (s *EntryService) Update(ctx context.Context, userID, id, title, content string) error {
	if err := checkFields(title, content); err != nil {
		return err
	}
	if !validID(id) {
		return common.ErrorNotFound
	}

	if err := s.repomanager.Entries(s.db).Update(ctx, userID, id, title, content); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error updating entry: %w", err)
	}

	s.changed(ctx, userID)
	return nil
}

// Delete removes the entry. Deleting an absent entry succeeds.
func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return nil
	}

	removed, err := s.repomanager.Entries(s.db).Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}

	if removed {
		s.changed(ctx, userID)
	}
	return nil
}

func (s *EntryService) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	entries, err := s.repomanager.Entries(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}

// Watch calls send with the owner's full entry set now and again after
// every change, until ctx is done or send fails.
func (s *EntryService) Watch(ctx context.Context, userID string, send func([]*models.Entry) error) error {
	sub := s.hub.Subscribe(userID)
	defer sub.Close()

	for {
		entries, err := s.List(ctx, userID)
		if err != nil {
			return err
		}
		if err := send(entries); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-sub.C():
		}
	}
}
