package entrylist

import (
	"sync"

	"github.com/dmitrijs2005/copyit/internal/client/models"
)

// Controller holds the inputs of the list view. Snapshots arrive from the
// subscription goroutine while the REPL reads, so all access is locked.
//
// The view belongs to one owner at a time. Open starts a generation for
// an owner; snapshots tagged with an older generation are ignored, so a
// subscription still draining after sign-out cannot show its entries to
// the next user.
type Controller struct {
	mu       sync.Mutex
	owner    string
	gen      uint64
	entries  []models.Entry
	loaded   bool
	search   string
	order    SortOrder
	rendered []models.Entry
}

func NewController() *Controller {
	return &Controller{order: DefaultSortOrder}
}

// Open forgets the snapshot and starts a view for owner. The returned
// generation tags the snapshots delivered for it.
func (c *Controller) Open(owner string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	c.owner = owner
	return c.gen
}

// SetEntries replaces the snapshot of generation gen and reports whether
// it was accepted. Entries of other owners are dropped.
func (c *Controller) SetEntries(gen uint64, entries []models.Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.owner == "" {
		return false
	}

	kept := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == c.owner {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	c.loaded = true
	return true
}

// Reset forgets the snapshot and the owner, e.g. after sign-out.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

func (c *Controller) clear() {
	c.gen++
	c.owner = ""
	c.entries, c.rendered = nil, nil
	c.loaded = false
	c.search = ""
}

func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

func (c *Controller) SetSearch(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = s
}

func (c *Controller) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

func (c *Controller) SetOrder(o SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = o
}

func (c *Controller) Order() SortOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// View derives the list and remembers it for At.
func (c *Controller) View() []models.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rendered = Derive(c.entries, c.search, c.order)
	return c.rendered
}

// At returns the entry at 1-based position n of the last View.
func (c *Controller) At(n int) (models.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 || n > len(c.rendered) {
		return models.Entry{}, false
	}
	return c.rendered[n-1], true
}
