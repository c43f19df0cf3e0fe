package services

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/common"
	"github.com/google/uuid"
)

// MockPrincipal is the user shown in demo mode.
var MockPrincipal = models.Principal{UserID: "mock-user", Email: "demo@example.com"}

// demoEntries returns the entries a demo session starts with.
func demoEntries(now time.Time) []models.Entry {
	return []models.Entry{
		{
			ID:        "1",
			UserID:    MockPrincipal.UserID,
			Title:     "Welcome to CopyIt!",
			Content:   "This is a demo of your personal clipboard manager. No server is configured, so this is mock data and your changes will not be saved.",
			CreatedAt: now.Add(-5 * time.Minute),
		},
		{
			ID:        "2",
			UserID:    MockPrincipal.UserID,
			Title:     "How to use",
			Content:   `Type "add" to create a new entry. You can edit, delete, and copy existing entries.`,
			CreatedAt: now.Add(-2 * time.Minute),
		},
		{
			ID:        "3",
			UserID:    MockPrincipal.UserID,
			Title:     "Example JavaScript Snippet",
			Content:   "const greeting = \"Hello, world!\";\nconsole.log(greeting);",
			CreatedAt: now,
		},
	}
}

// mockAuth is always signed in as MockPrincipal.
type mockAuth struct {
	feed *feed[*models.Principal]
}

func NewMockAuthService() AuthService {
	p := MockPrincipal
	return &mockAuth{feed: newFeed(&p)}
}

func (m *mockAuth) SignIn(context.Context, string, string) (*models.Principal, error) {
	return nil, ErrBackendNotConfigured
}

func (m *mockAuth) SignUp(context.Context, string, string) error {
	return ErrBackendNotConfigured
}

func (m *mockAuth) SignOut(context.Context) error {
	return ErrBackendNotConfigured
}

func (m *mockAuth) Restore(context.Context) error { return nil }

func (m *mockAuth) Watch(ctx context.Context) <-chan *models.Principal {
	return watchFeed(ctx, m.feed)
}

func (m *mockAuth) Current() *models.Principal { return m.feed.current() }
func (m *mockAuth) Ping(context.Context) error  { return nil }
func (m *mockAuth) Close() error                { return nil }

// MemoryStore is the demo entry store. Nothing is persisted.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.Entry
	feed    *feed[[]models.Entry]
	now     func() time.Time
}

// NewMemoryStore returns a store seeded with the demo entries.
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(time.Now)
}

func newMemoryStore(now func() time.Time) *MemoryStore {
	seed := demoEntries(now())
	return &MemoryStore{entries: seed, feed: newFeed(clone(seed)), now: now}
}

func clone(entries []models.Entry) []models.Entry {
	return append([]models.Entry(nil), entries...)
}

// commit publishes the current entries; the caller holds mu.
func (m *MemoryStore) commit() {
	m.feed.publish(clone(m.entries))
}

func (m *MemoryStore) Subscribe(ctx context.Context) iter.Seq2[[]models.Entry, error] {
	return func(yield func([]models.Entry, error) bool) {
		ch, cancel := m.feed.subscribe()
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-ch:
				if !yield(ownedBy(snap, MockPrincipal.UserID), nil) {
					return
				}
			}
		}
	}
}

// Create puts the new entry first, matching the order a fresh demo shows.
func (m *MemoryStore) Create(_ context.Context, title, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := models.Entry{
		ID:        uuid.NewString(),
		UserID:    MockPrincipal.UserID,
		Title:     title,
		Content:   content,
		CreatedAt: m.now(),
	}
	m.entries = append([]models.Entry{e}, m.entries...)
	m.commit()
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id, title, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Title = title
			m.entries[i].Content = content
			m.commit()
			return nil
		}
	}
	return &PersistenceError{Op: OpSave, Err: common.ErrorNotFound}
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			m.commit()
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) Export(context.Context) (string, error) {
	return "", ErrBackendNotConfigured
}
