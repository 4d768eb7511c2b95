package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow/internal/identity/domain"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/database"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))

	return db
}

func mustNewUser(t *testing.T, emailStr, nameStr string) *domain.User {
	t.Helper()

	email, err := domain.NewEmail(emailStr)
	require.NoError(t, err)
	name, err := domain.NewName(nameStr)
	require.NoError(t, err)

	return domain.NewUser(email, name, "$2a$04$testhash")
}

func TestSQLiteUserRepository_InsertAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	user := mustNewUser(t, "alice@example.com", "Alice")
	require.NoError(t, repo.Insert(ctx, user))

	found, err := repo.FindByID(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, user.ID(), found.ID())
	assert.Equal(t, "alice@example.com", found.Email().String())
	assert.Equal(t, "Alice", found.Name().String())
	assert.Equal(t, "$2a$04$testhash", found.PasswordHash())

	byEmail, err := repo.FindByEmail(ctx, user.Email())
	require.NoError(t, err)
	assert.Equal(t, user.ID(), byEmail.ID())
}

func TestSQLiteUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	email, err := domain.NewEmail("nobody@example.com")
	require.NoError(t, err)
	_, err = repo.FindByEmail(ctx, email)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSQLiteUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	first := mustNewUser(t, "alice@example.com", "Alice")
	require.NoError(t, repo.Insert(ctx, first))

	second := mustNewUser(t, "alice@example.com", "Other Alice")
	err := repo.Insert(ctx, second)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSQLiteUserRepository_ExistsByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	user := mustNewUser(t, "alice@example.com", "Alice")
	require.NoError(t, repo.Insert(ctx, user))

	exists, err := repo.ExistsByEmail(ctx, user.Email())
	require.NoError(t, err)
	assert.True(t, exists)

	other, err := domain.NewEmail("bob@example.com")
	require.NoError(t, err)
	exists, err = repo.ExistsByEmail(ctx, other)
	require.NoError(t, err)
	assert.False(t, exists)
}
