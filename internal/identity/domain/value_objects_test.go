package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := NewEmail("  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email.String())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, input := range []string{"", "alice", "alice@", "@example.com", "alice@example", "a b@example.com"} {
			_, err := NewEmail(input)
			assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", input)
		}
	})

	t.Run("equality ignores original casing", func(t *testing.T) {
		a, err := NewEmail("bob@example.com")
		require.NoError(t, err)
		b, err := NewEmail("BOB@example.com")
		require.NoError(t, err)
		assert.True(t, a.Equals(b))
	})
}

func TestNewName(t *testing.T) {
	t.Run("accepts a trimmed name", func(t *testing.T) {
		name, err := NewName("  Alice ")
		require.NoError(t, err)
		assert.Equal(t, "Alice", name.String())
	})

	t.Run("rejects names below two characters", func(t *testing.T) {
		for _, input := range []string{"", " ", "a", " a "} {
			_, err := NewName(input)
			assert.ErrorIs(t, err, ErrNameTooShort, "input %q", input)
		}
	})

	t.Run("rejects overlong names", func(t *testing.T) {
		_, err := NewName(strings.Repeat("x", MaxNameLength+1))
		assert.ErrorIs(t, err, ErrNameTooLong)
	})
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", MaxPasswordLength+1)), ErrWeakPassword)
}

func TestNewUser(t *testing.T) {
	email, err := NewEmail("alice@example.com")
	require.NoError(t, err)
	name, err := NewName("Alice")
	require.NoError(t, err)

	user := NewUser(email, name, "$2a$12$hash")

	assert.NotEqual(t, "", user.ID().String())
	assert.Equal(t, email, user.Email())
	assert.Equal(t, name, user.Name())
	assert.Equal(t, "$2a$12$hash", user.PasswordHash())

	events := user.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, RoutingKeyUserRegistered, events[0].RoutingKey())
	assert.Equal(t, user.ID(), events[0].AggregateID())
}
