// Package common contains shared constants and sentinel errors used across
// CopyIt components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MinPasswordLength is the password policy enforced by the identity provider.
const MinPasswordLength = 6
