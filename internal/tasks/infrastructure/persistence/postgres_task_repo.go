// Package persistence provides task.Repository implementations for the
// supported storage backends.
package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/database"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// taskRow represents a database row for tasks.
type taskRow struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Insert persists a new task.
func (r *PostgresTaskRepository) Insert(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID(),
		t.OwnerID(),
		t.Title(),
		t.Description(),
		t.Status().String(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a task by its ID.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var row taskRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.OwnerID,
		&row.Title,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}

	return rowToTask(row)
}

// FindByOwner retrieves all tasks for an owner in insertion order.
func (r *PostgresTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		var row taskRow
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

		t, err := rowToTask(row)
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

// Update applies a partial patch to a task. Only the set fields are
// written, so a concurrent update to a different field is not clobbered.
func (r *PostgresTaskRepository) Update(ctx context.Context, id uuid.UUID, patch task.Patch) (*task.Task, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, patch.Status.String())
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}

	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE tasks SET %s
		WHERE id = $%d
		RETURNING id, owner_id, title, description, status, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	var row taskRow
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.OwnerID,
		&row.Title,
		&row.Description,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}

	return rowToTask(row)
}

// Delete removes a task. Deleting an absent id is an error so a stale
// client is told about the desync instead of silently succeeding.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func rowToTask(row taskRow) (*task.Task, error) {
	status, err := task.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in database: %w", err)
	}

	return task.Rehydrate(
		row.ID,
		row.OwnerID,
		row.Title,
		row.Description,
		status,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
