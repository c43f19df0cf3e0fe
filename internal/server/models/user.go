// Package models defines the rows persisted by the server.
package models

import "time"

// User is an identity provider account. Verifier is the argon2id digest
// of the password with Salt.
type User struct {
	ID        string
	Email     string
	Salt      []byte
	Verifier  []byte
	Disabled  bool
	CreatedAt time.Time
}
