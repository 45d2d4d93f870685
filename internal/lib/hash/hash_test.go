package hash_test

import (
	"testing"

	"github.com/linemk/user-service/internal/lib/hash"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword_ProducesVerifiableHash(t *testing.T) {
	hashed, err := hash.Password("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", string(hashed), "Hash must not be the plaintext")

	cost, err := bcrypt.Cost(hashed)
	assert.NoError(t, err)
	assert.Equal(t, hash.Cost, cost)

	assert.NoError(t, hash.Compare(hashed, "password123"), "Original password should match")
	assert.ErrorIs(t, hash.Compare(hashed, "other-password"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestCompare_MalformedHash(t *testing.T) {
	err := hash.Compare([]byte("not-a-bcrypt-hash"), "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword, "Malformed hash is not a plain mismatch")
}
