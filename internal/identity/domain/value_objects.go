package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrNameTooShort = errors.New("name must be at least 2 characters")
	ErrNameTooLong  = errors.New("name exceeds maximum length")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

const (
	// MinNameLength is the minimum allowed name length.
	MinNameLength = 2
	// MaxNameLength is the maximum allowed name length.
	MaxNameLength = 255
	// MinPasswordLength is the minimum allowed password length.
	MinPasswordLength = 6
	// MaxPasswordLength caps passwords at bcrypt's input limit.
	MaxPasswordLength = 72
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email represents a validated email address.
type Email struct {
	value string
}

// NewEmail creates a validated email address.
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return Email{}, ErrInvalidEmail
	}
	if !emailRegex.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

// String returns the email string.
func (e Email) String() string {
	return e.value
}

// Equals checks if two emails are equal.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Name represents a validated user name.
type Name struct {
	value string
}

// NewName creates a validated name.
func NewName(value string) (Name, error) {
	value = strings.TrimSpace(value)
	if len(value) < MinNameLength {
		return Name{}, ErrNameTooShort
	}
	if len(value) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: value}, nil
}

// String returns the name string.
func (n Name) String() string {
	return n.value
}

// Equals checks if two names are equal.
func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// ValidatePassword checks a plaintext password against the account
// policy. The plaintext itself is never stored.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
