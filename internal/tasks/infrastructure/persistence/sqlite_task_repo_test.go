package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/database"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/migrations"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

func setupTestDB(t *testing.T) (*sql.DB, uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))

	// Tasks reference users, so seed an owner row.
	ownerID := uuid.New()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ownerID.String(), "Test User", ownerID.String()+"@example.com", "x", now, now,
	)
	require.NoError(t, err)

	return db, ownerID
}

func mustNewTask(t *testing.T, ownerID uuid.UUID, title, description string) *task.Task {
	t.Helper()
	tk, err := task.NewTask(ownerID, title, description)
	require.NoError(t, err)
	return tk
}

func TestSQLiteTaskRepository_InsertAndFind(t *testing.T) {
	db, ownerID := setupTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	tk := mustNewTask(t, ownerID, "Write report", "some notes")
	require.NoError(t, repo.Insert(ctx, tk))

	found, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), found.ID())
	assert.Equal(t, ownerID, found.OwnerID())
	assert.Equal(t, "Write report", found.Title())
	assert.Equal(t, "some notes", found.Description())
	assert.Equal(t, task.StatusPending, found.Status())
}

func TestSQLiteTaskRepository_FindByID_NotFound(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewSQLiteTaskRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestSQLiteTaskRepository_FindByOwner(t *testing.T) {
	db, ownerID := setupTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	t.Run("empty store returns empty slice", func(t *testing.T) {
		tasks, err := repo.FindByOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("returns only the owner's tasks in insertion order", func(t *testing.T) {
		first := mustNewTask(t, ownerID, "first", "")
		require.NoError(t, repo.Insert(ctx, first))
		second := mustNewTask(t, ownerID, "second", "")
		require.NoError(t, repo.Insert(ctx, second))

		// A foreign task must never show up in the owner's list.
		otherOwner := uuid.New()
		now := time.Now().UTC().Format(time.RFC3339Nano)
		_, err := db.ExecContext(ctx,
			`INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			otherOwner.String(), "Other", otherOwner.String()+"@example.com", "x", now, now,
		)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, mustNewTask(t, otherOwner, "foreign", "")))

		tasks, err := repo.FindByOwner(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "first", tasks[0].Title())
		assert.Equal(t, "second", tasks[1].Title())
	})
}

func TestSQLiteTaskRepository_Update(t *testing.T) {
	db, ownerID := setupTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	tk := mustNewTask(t, ownerID, "original", "desc")
	require.NoError(t, repo.Insert(ctx, tk))

	t.Run("partial patch leaves other fields untouched", func(t *testing.T) {
		status := task.StatusCompleted
		updated, err := repo.Update(ctx, tk.ID(), task.Patch{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, task.StatusCompleted, updated.Status())
		assert.Equal(t, "original", updated.Title())
		assert.Equal(t, "desc", updated.Description())
		assert.Equal(t, tk.ID(), updated.ID())
	})

	t.Run("title patch", func(t *testing.T) {
		title := "renamed"
		updated, err := repo.Update(ctx, tk.ID(), task.Patch{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title())
		assert.Equal(t, task.StatusCompleted, updated.Status(), "status from previous patch survives")
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "x"
		_, err := repo.Update(ctx, uuid.New(), task.Patch{Title: &title})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestSQLiteTaskRepository_Delete(t *testing.T) {
	db, ownerID := setupTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	tk := mustNewTask(t, ownerID, "to delete", "")
	require.NoError(t, repo.Insert(ctx, tk))

	require.NoError(t, repo.Delete(ctx, tk.ID()))

	// Deletion is not idempotent: the second delete surfaces the desync.
	assert.ErrorIs(t, repo.Delete(ctx, tk.ID()), task.ErrTaskNotFound)

	_, err := repo.FindByID(ctx, tk.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}
