package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// GetTaskQuery contains the parameters for fetching a single task.
type GetTaskQuery struct {
	OwnerID uuid.UUID
	TaskID  uuid.UUID
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle returns the task if it exists and belongs to the caller.
// A foreign task yields the same ErrTaskNotFound as a missing one.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (TaskDTO, error) {
	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return TaskDTO{}, err
	}

	if !t.IsOwnedBy(query.OwnerID) {
		return TaskDTO{}, task.ErrTaskNotFound
	}

	return ToDTO(t), nil
}
