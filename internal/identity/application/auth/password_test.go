package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	// Cost 4 keeps the test fast; hash format is identical.
	hasher := &PasswordHasher{cost: 4}

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, hasher.Verify("secret123", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("secret123", "not-a-hash"))
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	hasher := &PasswordHasher{cost: 4}

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
