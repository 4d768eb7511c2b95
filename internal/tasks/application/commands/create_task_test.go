package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow/internal/tasks/application/queries"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

func TestCreateTaskHandler_Handle(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	t.Run("creates pending task owned by caller", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		publisher := &recordingPublisher{}
		c := &fakeCache{}
		handler := NewCreateTaskHandler(taskRepo, publisher, c, nil)

		taskRepo.On("Insert", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

		created, err := handler.Handle(ctx, CreateTaskCommand{
			OwnerID:     ownerID,
			Title:       "Write report",
			Description: "first pass",
		})

		require.NoError(t, err)
		assert.Equal(t, ownerID, created.OwnerID())
		assert.Equal(t, "Write report", created.Title())
		assert.Equal(t, task.StatusPending, created.Status())
		assert.Contains(t, publisher.keys(), task.RoutingKeyCreated)
		assert.Contains(t, c.deletedKeys(), queries.ListCacheKey(ownerID))

		taskRepo.AssertExpectations(t)
	})

	t.Run("fails with empty title before touching the store", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewCreateTaskHandler(taskRepo, &recordingPublisher{}, &fakeCache{}, nil)

		_, err := handler.Handle(ctx, CreateTaskCommand{OwnerID: ownerID, Title: "  "})

		assert.ErrorIs(t, err, task.ErrEmptyTitle)
		taskRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("surfaces store failure", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		publisher := &recordingPublisher{}
		handler := NewCreateTaskHandler(taskRepo, publisher, &fakeCache{}, nil)

		taskRepo.On("Insert", ctx, mock.AnythingOfType("*task.Task")).Return(errors.New("connection reset"))

		_, err := handler.Handle(ctx, CreateTaskCommand{OwnerID: ownerID, Title: "Write report"})

		assert.Error(t, err)
		assert.Empty(t, publisher.keys(), "no events on failed insert")
		taskRepo.AssertExpectations(t)
	})
}
