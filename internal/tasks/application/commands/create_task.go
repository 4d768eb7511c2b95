package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/cache"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/taskflow/taskflow/internal/tasks/application/queries"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// CreateTaskCommand contains the data needed to create a task. OwnerID
// is the server-resolved identity of the caller, never a client field.
type CreateTaskCommand struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo  task.Repository
	publisher eventbus.Publisher
	cache     cache.Cache
	logger    *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, publisher eventbus.Publisher, c cache.Cache, logger *slog.Logger) *CreateTaskHandler {
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateTaskHandler{taskRepo: taskRepo, publisher: publisher, cache: c, logger: logger}
}

// Handle creates a pending task owned by the caller.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*task.Task, error) {
	t, err := task.NewTask(cmd.OwnerID, cmd.Title, cmd.Description)
	if err != nil {
		return nil, err
	}

	if err := h.taskRepo.Insert(ctx, t); err != nil {
		return nil, err
	}

	h.cache.Delete(ctx, queries.ListCacheKey(cmd.OwnerID))
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, t.DomainEvents())
	t.ClearDomainEvents()

	return t, nil
}
