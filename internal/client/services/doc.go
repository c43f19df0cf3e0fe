// Package services holds the CLI's application services.
//
// AuthService owns the signed-in principal: it signs in and out through
// the server, persists the session locally and streams principal changes
// to watchers. EntryService is the entry store for one principal; its
// Subscribe yields full snapshots until the loop stops or the context
// ends. Both have an in-memory demo implementation used when no server is
// configured.
package services
