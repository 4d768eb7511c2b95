package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task does not exist. Callers that
// enforce ownership return the same error for tasks owned by someone
// else, so absence and foreign ownership stay indistinguishable.
var ErrTaskNotFound = errors.New("task not found")

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Fields returns the names of the fields the patch sets.
func (p Patch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	return fields
}

// Repository defines the interface for task persistence.
//
// Update applies the patch as a partial write: only the set fields reach
// the store, so concurrent updates to different fields of the same task
// cannot overwrite each other wholesale. Each operation is atomic at
// single-record granularity; there are no multi-record guarantees.
type Repository interface {
	Insert(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Task, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
