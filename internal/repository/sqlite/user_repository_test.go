package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-manager/internal/domain"
	"user-manager/internal/repository"
	"user-manager/internal/repository/sqlite"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func testUser(username, email string) *domain.User {
	return &domain.User{
		Username:     username,
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarea",
		Role:         domain.RoleUser,
		Active:       true,
	}
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("alice", "alice@example.com")
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.Positive(t, id)
	require.False(t, user.CreatedAt.IsZero())
	require.Equal(t, user.CreatedAt, user.UpdatedAt)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
	require.Equal(t, "alice@example.com", byName.Email)
	require.Equal(t, domain.RoleUser, byName.Role)
	require.True(t, byName.Active)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 42)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Update(ctx, testUser("ghost", "")), repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrNotFound)
}

func TestUserRepositoryUniqueConstraints(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testUser("alice", "other@example.com"))
	require.ErrorIs(t, err, repository.ErrConflict)

	_, err = repo.Create(ctx, testUser("bob", "alice@example.com"))
	require.ErrorIs(t, err, repository.ErrConflict)

	// empty emails never collide with each other
	_, err = repo.Create(ctx, testUser("carol", ""))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testUser("dave", ""))
	require.NoError(t, err)
}

func TestUserRepositoryUpdateTouchesTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("alice", "alice@example.com")
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)
	created := user.UpdatedAt

	time.Sleep(20 * time.Millisecond)

	user.FirstName = "Alicia"
	require.NoError(t, repo.Update(ctx, user))
	require.True(t, user.UpdatedAt.After(created))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alicia", stored.FirstName)
	require.False(t, stored.UpdatedAt.Before(stored.CreatedAt))
	require.Equal(t, created.Unix(), stored.CreatedAt.Unix())
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("alice", "alice@example.com")
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.GetByID(ctx, id)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
