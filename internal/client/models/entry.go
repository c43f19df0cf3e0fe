// Package models defines the client-side view of entries and sessions.
package models

import "time"

// Entry is one clipboard record as seen by the client. A zero CreatedAt
// means the store has not stamped the entry yet.
type Entry struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
}

// Pending reports whether the store has not yet assigned a creation time.
func (e Entry) Pending() bool {
	return e.CreatedAt.IsZero()
}

// Principal identifies the signed-in user.
type Principal struct {
	UserID string
	Email  string
}
