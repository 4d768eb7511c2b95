package commands

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// mockTaskRepo is a mock implementation of task.Repository.
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

// recordingPublisher captures published routing keys.
type recordingPublisher struct {
	mu          sync.Mutex
	routingKeys []string
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routingKeys = append(p.routingKeys, routingKey)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.routingKeys...)
}

// fakeCache records deletions so tests can assert invalidation.
type fakeCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}

func (c *fakeCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
}

func (c *fakeCache) deletedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

func mustNewTask(ownerID uuid.UUID, title, description string) *task.Task {
	t, err := task.NewTask(ownerID, title, description)
	if err != nil {
		panic(err)
	}
	t.ClearDomainEvents()
	return t
}
