package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/identity/domain"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/database"
)

// SQLiteUserRepository implements domain.UserRepository using SQLite.
// Timestamps are stored as RFC3339 strings.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite user repository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Insert persists a new user. A duplicate email fails with ErrEmailTaken.
func (r *SQLiteUserRepository) Insert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID().String(),
		user.Name().String(),
		user.Email().String(),
		user.PasswordHash(),
		user.CreatedAt().Format(time.RFC3339Nano),
		user.UpdatedAt().Format(time.RFC3339Nano),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id.String()))
}

// FindByEmail retrieves a user by their email address.
func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email.String()))
}

// ExistsByEmail checks if a user with the given email exists.
func (r *SQLiteUserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = ?`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, email.String()).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLiteUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var (
		idStr, name, email, hash   string
		createdAtStr, updatedAtStr string
	)

	err := row.Scan(&idStr, &name, &email, &hash, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	return rehydrateUser(id, name, email, hash, createdAt, updatedAt)
}
