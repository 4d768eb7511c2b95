package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/taskflow/taskflow/internal/shared/domain"
)

const (
	AggregateType = "User"

	RoutingKeyUserRegistered = "identity.user.registered"
)

// UserRegistered is emitted when a new account is created.
type UserRegistered struct {
	sharedDomain.BaseEvent
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewUserRegistered creates a UserRegistered event.
func NewUserRegistered(userID uuid.UUID, email, name string) UserRegistered {
	return UserRegistered{
		BaseEvent: sharedDomain.NewBaseEvent(userID, AggregateType, RoutingKeyUserRegistered),
		Email:     email,
		Name:      name,
	}
}
