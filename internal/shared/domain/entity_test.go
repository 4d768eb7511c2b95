package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, e.ID())
	assert.False(t, e.CreatedAt().IsZero())
	assert.Equal(t, e.CreatedAt(), e.UpdatedAt())
}

func TestRehydrateBaseEntity(t *testing.T) {
	id := uuid.New()
	createdAt := time.Now().UTC().Add(-time.Hour)
	updatedAt := time.Now().UTC()

	e := RehydrateBaseEntity(id, createdAt, updatedAt)

	assert.Equal(t, id, e.ID())
	assert.Equal(t, createdAt, e.CreatedAt())
	assert.Equal(t, updatedAt, e.UpdatedAt())
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	before := e.UpdatedAt()

	time.Sleep(time.Millisecond)
	e.Touch()

	assert.True(t, e.UpdatedAt().After(before))
	assert.Equal(t, e.CreatedAt(), e.CreatedAt(), "createdAt must not change")
}

func TestBaseEntity_Equals(t *testing.T) {
	t.Run("same identity", func(t *testing.T) {
		id := uuid.New()
		now := time.Now().UTC()
		a := RehydrateBaseEntity(id, now, now)
		b := RehydrateBaseEntity(id, now.Add(time.Hour), now.Add(time.Hour))

		assert.True(t, a.Equals(b))
	})

	t.Run("different identity", func(t *testing.T) {
		a := NewBaseEntity()
		b := NewBaseEntity()

		assert.False(t, a.Equals(b))
	})

	t.Run("nil other", func(t *testing.T) {
		a := NewBaseEntity()

		assert.False(t, a.Equals(nil))
	})
}

type testEvent struct {
	BaseEvent
}

func TestBaseAggregateRoot_DomainEvents(t *testing.T) {
	a := NewBaseAggregateRoot()
	require.Empty(t, a.DomainEvents())

	a.AddDomainEvent(testEvent{BaseEvent: NewBaseEvent(a.ID(), "Test", "test.created")})
	a.AddDomainEvent(testEvent{BaseEvent: NewBaseEvent(a.ID(), "Test", "test.updated")})

	assert.Len(t, a.DomainEvents(), 2)

	a.ClearDomainEvents()
	assert.Empty(t, a.DomainEvents())
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	e := NewBaseEvent(aggregateID, "Task", "task.created")

	assert.NotEqual(t, uuid.Nil, e.EventID())
	assert.Equal(t, aggregateID, e.AggregateID())
	assert.Equal(t, "Task", e.AggregateType())
	assert.Equal(t, "task.created", e.RoutingKey())
	assert.False(t, e.OccurredAt().IsZero())
}
