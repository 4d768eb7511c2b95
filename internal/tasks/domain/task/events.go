package task

import (
	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated   = "core.task.created"
	RoutingKeyUpdated   = "core.task.updated"
	RoutingKeyCompleted = "core.task.completed"
	RoutingKeyDeleted   = "core.task.deleted"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title string `json:"title"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, title string) TaskCreated {
	return TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Title:     title,
	}
}

// TaskUpdated is emitted when a task is updated.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"` // Names of fields that were updated
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(taskID uuid.UUID, fields []string) TaskUpdated {
	return TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Fields:    fields,
	}
}

// TaskCompleted is emitted when a task reaches the completed status.
type TaskCompleted struct {
	domain.BaseEvent
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID uuid.UUID) TaskCompleted {
	return TaskCompleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCompleted),
	}
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	domain.BaseEvent
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(taskID uuid.UUID) TaskDeleted {
	return TaskDeleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDeleted),
	}
}
