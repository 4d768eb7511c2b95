package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/cache"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// listCacheTTL bounds staleness for list reads that race a mutation's
// cache invalidation.
const listCacheTTL = 30 * time.Second

// ListCacheKey returns the cache key holding an owner's task list.
// Mutating handlers delete this key after every successful write.
func ListCacheKey(ownerID uuid.UUID) string {
	return "tasks:" + ownerID.String()
}

// TaskDTO is the wire representation of a task.
type TaskDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToDTO converts a task aggregate to its wire representation.
func ToDTO(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID(),
		OwnerID:     t.OwnerID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		CreatedAt:   t.CreatedAt(),
	}
}

// ToDTOs converts a slice of task aggregates, never returning nil.
func ToDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToDTO(t)
	}
	return dtos
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	OwnerID uuid.UUID
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	cache    cache.Cache
	logger   *slog.Logger
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository, c cache.Cache, logger *slog.Logger) *ListTasksHandler {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListTasksHandler{taskRepo: taskRepo, cache: c, logger: logger}
}

// Handle returns every task owned by the caller, in store insertion
// order. An owner with no tasks gets an empty list, not an error.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	key := ListCacheKey(query.OwnerID)

	if data, ok := h.cache.Get(ctx, key); ok {
		var dtos []TaskDTO
		if err := json.Unmarshal(data, &dtos); err == nil {
			return dtos, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		h.cache.Delete(ctx, key)
	}

	tasks, err := h.taskRepo.FindByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	dtos := ToDTOs(tasks)

	if data, err := json.Marshal(dtos); err == nil {
		h.cache.Set(ctx, key, data, listCacheTTL)
	} else {
		h.logger.Warn("failed to marshal task list for cache", "error", err)
	}

	return dtos, nil
}
