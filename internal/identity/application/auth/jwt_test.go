package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "taskflow")

	t.Run("round trip", func(t *testing.T) {
		userID := uuid.New().String()
		token, err := manager.Generate(userID, "alice@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := manager.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "taskflow", claims.Issuer)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := manager.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTManager("different-secret", time.Hour, "taskflow")
		token, err := other.Generate(uuid.New().String(), "bob@example.com")
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute, "taskflow")
		token, err := expired.Generate(uuid.New().String(), "carol@example.com")
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
