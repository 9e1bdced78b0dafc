package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestCheckPasswordHashRejectsGarbageHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("anything", "not-a-bcrypt-hash"))
}

func TestValidateNewUser(t *testing.T) {
	assert.Equal(t, "Username and password required.", ValidateNewUser("", "secret1"))
	assert.Equal(t, "Username and password required.", ValidateNewUser("alice", ""))
	assert.Equal(t, "Password must be at least 6 characters long", ValidateNewUser("alice", "short"))
	assert.Equal(t, "", ValidateNewUser("alice", "secret1"))
}
