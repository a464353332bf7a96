// Package cryptox holds the password digest scheme used by the local
// session store. Raw passwords are never persisted; only an argon2id
// digest with its salt.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/rafiqdev/fieldforce/internal/common"
)

const (
	saltLen = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

func deriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// DigestPassword derives an argon2id digest from the password with a fresh
// random salt and encodes salt and digest into a single storable string.
func DigestPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey(password, salt)
	return fmt.Sprintf("argon2id$%s$%s", hex.EncodeToString(salt), hex.EncodeToString(key))
}

// VerifyPassword reports whether password matches the encoded digest.
// Malformed digests verify as false, never as an error.
func VerifyPassword(password []byte, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	got := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}
