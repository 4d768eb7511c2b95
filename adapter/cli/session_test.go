package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	token, err := loadSessionToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, saveSessionToken("abc.def.ghi"))

	token, err = loadSessionToken()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	path, err := sessionPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".taskflow", "session"), path)

	require.NoError(t, clearSessionToken())
	token, err = loadSessionToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, clearSessionToken())
}
