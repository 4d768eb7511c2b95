package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// sessionFileName is the token file under the TaskFlow home directory.
const sessionFileName = "session"

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskflow", sessionFileName), nil
}

// saveSessionToken persists the token for later invocations. The file
// is user-readable only.
func saveSessionToken(token string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

// loadSessionToken reads a previously stored token. A missing file
// yields an empty token, not an error.
func loadSessionToken() (string, error) {
	path, err := sessionPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// clearSessionToken removes the stored token.
func clearSessionToken() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
