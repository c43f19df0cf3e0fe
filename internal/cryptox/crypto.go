// Package cryptox derives and checks password verifiers. Passwords are
// stretched with argon2id and only a SHA-256 digest of the derived key is
// stored.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/copyit/internal/common"
	"golang.org/x/crypto/argon2"
)

const SaltSize = 16

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// HashPassword returns the verifier stored for password with salt.
func HashPassword(password string, salt []byte) []byte {
	key := DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// CheckPassword compares in constant time.
func CheckPassword(password string, salt, verifier []byte) bool {
	return subtle.ConstantTimeCompare(HashPassword(password, salt), verifier) == 1
}
