// Package persistence provides domain.UserRepository implementations
// for the supported storage backends.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskflow/taskflow/internal/identity/domain"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/database"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Insert persists a new user. A duplicate email fails with ErrEmailTaken.
func (r *PostgresUserRepository) Insert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID(),
		user.Name().String(),
		user.Email().String(),
		user.PasswordHash(),
		user.CreatedAt(),
		user.UpdatedAt(),
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
func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail retrieves a user by their email address.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email.String()))
}

// ExistsByEmail checks if a user with the given email exists.
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, email.String()).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

type pgRow interface {
	Scan(dest ...any) error
}

func (r *PostgresUserRepository) scanUser(row pgRow) (*domain.User, error) {
	var (
		id                   uuid.UUID
		name, email, hash    string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &email, &hash, &createdAt, &updatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return rehydrateUser(id, name, email, hash, createdAt, updatedAt)
}

func rehydrateUser(id uuid.UUID, nameStr, emailStr, hash string, createdAt, updatedAt time.Time) (*domain.User, error) {
	email, err := domain.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}

	name, err := domain.NewName(nameStr)
	if err != nil {
		return nil, err
	}

	return domain.Rehydrate(id, email, name, hash, createdAt, updatedAt), nil
}
