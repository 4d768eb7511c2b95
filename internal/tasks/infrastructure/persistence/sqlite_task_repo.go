package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// SQLiteTaskRepository implements task.Repository using SQLite.
// Timestamps are stored as RFC3339 strings.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

type sqliteTaskRow struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// Insert persists a new task.
func (r *SQLiteTaskRepository) Insert(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID().String(),
		t.OwnerID().String(),
		t.Title(),
		t.Description(),
		t.Status().String(),
		t.CreatedAt().Format(time.RFC3339Nano),
		t.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves a task by its ID.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`

	var row sqliteTaskRow
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&row.ID,
		&row.OwnerID,
		&row.Title,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}

	return sqliteRowToTask(row)
}

// FindByOwner retrieves all tasks for an owner in insertion order.
func (r *SQLiteTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE owner_id = ?
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		var row sqliteTaskRow
		if err := rows.Scan(
			&row.ID,
			&row.OwnerID,
			&row.Title,
			&row.Description,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}

		t, err := sqliteRowToTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update applies a partial patch to a task.
func (r *SQLiteTaskRepository) Update(ctx context.Context, id uuid.UUID, patch task.Patch) (*task.Task, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, patch.Status.String())
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))

	args = append(args, id.String())
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, task.ErrTaskNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete removes a task. Deleting an absent id is an error.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func sqliteRowToTask(row sqliteTaskRow) (*task.Task, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}

	ownerID, err := uuid.Parse(row.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner_id: %w", err)
	}

	status, err := task.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in database: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	return task.Rehydrate(id, ownerID, row.Title, row.Description, status, createdAt, updatedAt), nil
}
