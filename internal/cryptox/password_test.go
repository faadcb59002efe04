package cryptox

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	assert.Len(t, key1, int(argonKeyLen))
}

func TestDeriveKey_MatchesEncodedHash(t *testing.T) {
	h, err := HashPassword([]byte("secret-password"))
	require.NoError(t, err)

	parts := strings.Split(h, "$")
	require.Len(t, parts, 6)
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	require.NoError(t, err)
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	require.NoError(t, err)

	assert.Equal(t, key, DeriveKey([]byte("secret-password"), salt))
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	h1, err := HashPassword([]byte("pa55"))
	require.NoError(t, err)
	h2, err := HashPassword([]byte("pa55"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h1, "$argon2id$v=19$m=65536,t=1,p=4$"))
	assert.NotEqual(t, h1, h2, "salt must differ")
	assert.True(t, IsHashed(h1))

	ok, err := VerifyPassword(h1, []byte("pa55"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(h1, []byte("pass"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_Plain(t *testing.T) {
	ok, err := VerifyPassword("secret", []byte("secret"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("secret", []byte("secret "))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword("", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pa55"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword(string(hash), []byte("pa55"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(string(hash), []byte("nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, stored := range []string{
		"$2a$garbage",
		"$argon2id$v=19$m=65536,t=1,p=4$onlysalt",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=4000000000,p=4$c2FsdA$a2V5",
	} {
		_, err := VerifyPassword(stored, []byte("x"))
		require.ErrorIs(t, err, ErrMalformedHash, stored)
	}
}

func TestIsHashed(t *testing.T) {
	assert.True(t, IsHashed("$2a$10$abc"))
	assert.True(t, IsHashed("$2b$10$abc"))
	assert.True(t, IsHashed("$2y$10$abc"))
	assert.True(t, IsHashed("$argon2id$v=19$"))
	assert.False(t, IsHashed("$1$abc"))
	assert.False(t, IsHashed("plain"))
}
