// Package cli is the interactive CopyIt terminal client.
//
// NewApp wires configuration, the local session store and the gRPC
// client, or an in-memory demo store when no server is configured. Run
// restores the previous session, starts the session gate and the
// connectivity watcher, and serves the REPL until the user exits.
//
// Signed out, the REPL offers register and login. Signed in, it lists,
// searches, sorts, adds, edits, copies, deletes and exports entries.
// Entries are addressed by their position in the last printed list.
package cli
