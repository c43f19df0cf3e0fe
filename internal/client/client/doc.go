// Package client is the CLI's connection to the CopyIt server.
//
// GRPCClient implements Client over the CopyIt gRPC service. It keeps the
// session tokens, attaches the access token to every call and, when the
// server reports an expired access token, rotates the tokens once and
// retries. Status codes are mapped to ErrUnavailable, ErrUnauthorized,
// common.ErrorNotFound or *AuthError.
//
// InitDatabase opens the local SQLite database that holds the persisted
// session and applies the embedded migrations.
package client
