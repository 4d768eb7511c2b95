package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	sharedDomain "github.com/taskflow/taskflow/internal/shared/domain"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/cache"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/taskflow/taskflow/internal/tasks/application/queries"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// ToggleTaskCommand flips a task between done and not-done.
type ToggleTaskCommand struct {
	OwnerID uuid.UUID
	TaskID  uuid.UUID
}

// ToggleTaskHandler handles the ToggleTaskCommand. Toggling is a
// convenience over UpdateTask with a computed status patch: completed
// flips to pending, while pending and in-progress both complete.
type ToggleTaskHandler struct {
	taskRepo  task.Repository
	publisher eventbus.Publisher
	cache     cache.Cache
	logger    *slog.Logger
}

// NewToggleTaskHandler creates a new ToggleTaskHandler.
func NewToggleTaskHandler(taskRepo task.Repository, publisher eventbus.Publisher, c cache.Cache, logger *slog.Logger) *ToggleTaskHandler {
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ToggleTaskHandler{taskRepo: taskRepo, publisher: publisher, cache: c, logger: logger}
}

// Handle toggles the task's status.
func (h *ToggleTaskHandler) Handle(ctx context.Context, cmd ToggleTaskCommand) (*task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if !t.IsOwnedBy(cmd.OwnerID) {
		return nil, task.ErrTaskNotFound
	}

	next := t.Status().Toggled()
	updated, err := h.taskRepo.Update(ctx, cmd.TaskID, task.Patch{Status: &next})
	if err != nil {
		return nil, err
	}

	h.cache.Delete(ctx, queries.ListCacheKey(cmd.OwnerID))

	events := []sharedDomain.DomainEvent{task.NewTaskUpdated(updated.ID(), []string{"status"})}
	if updated.IsCompleted() {
		events = append(events, task.NewTaskCompleted(updated.ID()))
	}
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, events)

	return updated, nil
}
