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

// DeleteTaskCommand removes a task owned by the caller.
type DeleteTaskCommand struct {
	OwnerID uuid.UUID
	TaskID  uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo  task.Repository
	publisher eventbus.Publisher
	cache     cache.Cache
	logger    *slog.Logger
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository, publisher eventbus.Publisher, c cache.Cache, logger *slog.Logger) *DeleteTaskHandler {
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteTaskHandler{taskRepo: taskRepo, publisher: publisher, cache: c, logger: logger}
}

// Handle deletes the task. Deletion is not idempotent: a second delete
// of the same id fails with ErrTaskNotFound, as does deleting a task
// owned by someone else.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if !t.IsOwnedBy(cmd.OwnerID) {
		return task.ErrTaskNotFound
	}

	if err := h.taskRepo.Delete(ctx, cmd.TaskID); err != nil {
		return err
	}

	h.cache.Delete(ctx, queries.ListCacheKey(cmd.OwnerID))
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger,
		[]sharedDomain.DomainEvent{task.NewTaskDeleted(cmd.TaskID)})

	return nil
}
