package queries

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Insert(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, id uuid.UUID, patch task.Patch) (*task.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memoryCache is an in-process Cache for exercising the cache-aside path.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func mustNewTask(ownerID uuid.UUID, title, description string) *task.Task {
	t, err := task.NewTask(ownerID, title, description)
	if err != nil {
		panic(err)
	}
	return t
}

func TestListTasksHandler_Handle(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	t.Run("returns empty list for owner with no tasks", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo, nil, nil)

		taskRepo.On("FindByOwner", ctx, ownerID).Return([]*task.Task{}, nil)

		dtos, err := handler.Handle(ctx, ListTasksQuery{OwnerID: ownerID})

		require.NoError(t, err)
		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})

	t.Run("cache miss reads the store and fills the cache", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		c := newMemoryCache()
		handler := NewListTasksHandler(taskRepo, c, nil)

		first := mustNewTask(ownerID, "first", "")
		second := mustNewTask(ownerID, "second", "details")
		taskRepo.On("FindByOwner", ctx, ownerID).Return([]*task.Task{first, second}, nil).Once()

		dtos, err := handler.Handle(ctx, ListTasksQuery{OwnerID: ownerID})

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "first", dtos[0].Title)
		assert.Equal(t, "second", dtos[1].Title)
		assert.Equal(t, "pending", dtos[0].Status)

		_, ok := c.Get(ctx, ListCacheKey(ownerID))
		assert.True(t, ok)

		// A second read is served from the cache without touching the store.
		again, err := handler.Handle(ctx, ListTasksQuery{OwnerID: ownerID})
		require.NoError(t, err)
		assert.Equal(t, dtos, again)
		taskRepo.AssertExpectations(t)
	})

	t.Run("corrupt cache entry falls back to the store", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		c := newMemoryCache()
		handler := NewListTasksHandler(taskRepo, c, nil)

		c.Set(ctx, ListCacheKey(ownerID), []byte("{not json"), time.Minute)
		taskRepo.On("FindByOwner", ctx, ownerID).Return([]*task.Task{}, nil)

		dtos, err := handler.Handle(ctx, ListTasksQuery{OwnerID: ownerID})

		require.NoError(t, err)
		assert.Empty(t, dtos)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo, nil, nil)

		taskRepo.On("FindByOwner", ctx, ownerID).Return(nil, assert.AnError)

		_, err := handler.Handle(ctx, ListTasksQuery{OwnerID: ownerID})

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestToDTO(t *testing.T) {
	ownerID := uuid.New()
	tk := mustNewTask(ownerID, "serialize me", "with a description")

	dto := ToDTO(tk)

	assert.Equal(t, tk.ID(), dto.ID)
	assert.Equal(t, ownerID, dto.OwnerID)
	assert.Equal(t, "serialize me", dto.Title)
	assert.Equal(t, "with a description", dto.Description)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, tk.CreatedAt(), dto.CreatedAt)

	data, err := json.Marshal(dto)
	require.NoError(t, err)
	for _, field := range []string{`"id"`, `"ownerId"`, `"title"`, `"description"`, `"status"`, `"createdAt"`} {
		assert.Contains(t, string(data), field)
	}
}
