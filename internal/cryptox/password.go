// Package cryptox hashes and verifies operator passwords.
//
// A stored password is one of:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>   argon2id, base64 without padding
//	$2a$..., $2b$..., $2y$...                     bcrypt
//	anything else                                 plain text
//
// Plain text is compared in constant time; it is what the users container
// holds when it is maintained by hand.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16

	// upper bounds accepted from a stored hash
	maxArgonMemory uint32 = 1 << 20 // KiB
	maxArgonTime   uint32 = 16
	maxArgonKeyLen        = 128
)

const argonPrefix = "$argon2id$"

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// ErrMalformedHash is returned for a stored value that looks like a hash but
// cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns an argon2id hash of password with a random salt.
func HashPassword(password []byte) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := DeriveKey(password, salt)
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s", argonPrefix, argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// IsHashed reports whether stored is an argon2id or bcrypt hash.
func IsHashed(stored string) bool {
	if strings.HasPrefix(stored, argonPrefix) {
		return true
	}
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// VerifyPassword reports whether password matches stored.
func VerifyPassword(stored string, password []byte) (bool, error) {
	switch {
	case strings.HasPrefix(stored, argonPrefix):
		return verifyArgon(stored, password)
	case IsHashed(stored):
		err := bcrypt.CompareHashAndPassword([]byte(stored), password)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	default:
		return subtle.ConstantTimeCompare([]byte(stored), password) == 1, nil
	}
}

func verifyArgon(stored string, password []byte) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}
	if time < 1 || time > maxArgonTime || threads < 1 || memory < 1 || memory > maxArgonMemory {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > maxArgonKeyLen {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey(password, salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
