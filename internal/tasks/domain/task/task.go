package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/shared/domain"
)

var (
	ErrEmptyTitle    = errors.New("task title cannot be empty")
	ErrInvalidStatus = errors.New("invalid task status")
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseStatus converts a wire value into a Status. Anything outside the
// three persisted values is rejected with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "in-progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return StatusPending, ErrInvalidStatus
	}
}

// Toggled returns the status a toggle moves to: completed flips back to
// pending, everything else (pending and in-progress alike) completes.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task is an owner-scoped unit of work. The owner is assigned at creation
// and never changes.
type Task struct {
	domain.BaseAggregateRoot
	ownerID     uuid.UUID
	title       string
	description string
	status      Status
}

// NewTask creates a new pending task owned by ownerID.
func NewTask(ownerID uuid.UUID, title, description string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		title:             title,
		description:       strings.TrimSpace(description),
		status:            StatusPending,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title))

	return t, nil
}

// Rehydrate recreates a task from persisted state without raising events.
func Rehydrate(id, ownerID uuid.UUID, title, description string, status Status, createdAt, updatedAt time.Time) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(
			domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		ownerID:     ownerID,
		title:       title,
		description: description,
		status:      status,
	}
}

func (t *Task) OwnerID() uuid.UUID  { return t.ownerID }
func (t *Task) Title() string       { return t.title }
func (t *Task) Description() string { return t.description }
func (t *Task) Status() Status      { return t.status }
func (t *Task) IsCompleted() bool   { return t.status == StatusCompleted }

// IsOwnedBy reports whether the task belongs to the given owner.
func (t *Task) IsOwnedBy(ownerID uuid.UUID) bool {
	return t.ownerID == ownerID
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	t.Touch()
	return nil
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) {
	t.description = strings.TrimSpace(description)
	t.Touch()
}

// SetStatus moves the task to the given status.
func (t *Task) SetStatus(status Status) error {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
	default:
		return ErrInvalidStatus
	}
	t.status = status
	t.Touch()
	return nil
}
