package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	sharedDomain "github.com/taskflow/taskflow/internal/shared/domain"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/cache"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/taskflow/taskflow/internal/tasks/application/queries"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// UpdateTaskCommand contains the data needed to update a task.
// Nil fields mean "no change".
type UpdateTaskCommand struct {
	OwnerID     uuid.UUID
	TaskID      uuid.UUID
	Title       *string
	Description *string
	Status      *string
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo  task.Repository
	publisher eventbus.Publisher
	cache     cache.Cache
	logger    *slog.Logger
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, publisher eventbus.Publisher, c cache.Cache, logger *slog.Logger) *UpdateTaskHandler {
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateTaskHandler{taskRepo: taskRepo, publisher: publisher, cache: c, logger: logger}
}

// Handle applies a partial update to a task owned by the caller. A task
// that is missing or owned by someone else fails with ErrTaskNotFound
// either way. An empty patch returns the task unchanged without a write.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*task.Task, error) {
	patch, err := buildPatch(cmd)
	if err != nil {
		return nil, err
	}

	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if !t.IsOwnedBy(cmd.OwnerID) {
		return nil, task.ErrTaskNotFound
	}

	if patch.IsEmpty() {
		return t, nil
	}

	wasCompleted := t.IsCompleted()

	updated, err := h.taskRepo.Update(ctx, cmd.TaskID, patch)
	if err != nil {
		return nil, err
	}

	h.cache.Delete(ctx, queries.ListCacheKey(cmd.OwnerID))

	events := []sharedDomain.DomainEvent{task.NewTaskUpdated(updated.ID(), patch.Fields())}
	if updated.IsCompleted() && !wasCompleted {
		events = append(events, task.NewTaskCompleted(updated.ID()))
	}
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, events)

	return updated, nil
}

// buildPatch validates the command and turns it into a store patch.
func buildPatch(cmd UpdateTaskCommand) (task.Patch, error) {
	var patch task.Patch

	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return task.Patch{}, task.ErrEmptyTitle
		}
		patch.Title = &title
	}

	if cmd.Description != nil {
		description := strings.TrimSpace(*cmd.Description)
		patch.Description = &description
	}

	if cmd.Status != nil {
		status, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return task.Patch{}, err
		}
		patch.Status = &status
	}

	return patch, nil
}
