package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/taskflow/taskflow/internal/shared/domain"
)

// User represents a user account in the system.
type User struct {
	sharedDomain.BaseAggregateRoot
	email        Email
	name         Name
	passwordHash string
}

// NewUser creates a new user. The password hash must already be
// computed; the aggregate never sees plaintext credentials.
func NewUser(email Email, name Name, passwordHash string) *User {
	u := &User{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		email:             email,
		name:              name,
		passwordHash:      passwordHash,
	}

	u.AddDomainEvent(NewUserRegistered(u.ID(), email.String(), name.String()))

	return u
}

// Rehydrate recreates a user from persisted state without events.
func Rehydrate(id uuid.UUID, email Email, name Name, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
	}
}

// Getters
func (u *User) Email() Email         { return u.email }
func (u *User) Name() Name           { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }

// UpdateName changes the user's name.
func (u *User) UpdateName(name Name) {
	if u.name.Equals(name) {
		return
	}

	u.name = name
	u.Touch()
}
