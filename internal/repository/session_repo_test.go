package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"petcare/internal/database"
	"petcare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSessionRepo(t *testing.T, ttl time.Duration) (*SessionRepository, *UserRepository) {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on the
	// same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &domain.User{}, &domain.Session{}))
	return NewSessionRepository(db, ttl), NewUserRepository(db)
}

func createTestUser(t *testing.T, users *UserRepository) *domain.User {
	t.Helper()
	u := &domain.User{Email: "owner@x.com", Role: domain.RoleUser, Provider: domain.ProviderLocal}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestSessionRepository_CreateAndFindActive(t *testing.T) {
	repo, users := setupSessionRepo(t, 7*24*time.Hour)
	user := createTestUser(t, users)
	ctx := context.Background()

	raw, err := repo.Create(ctx, user.ID, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	session, err := repo.FindActive(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "test-agent", session.UserAgent)
	require.NotNil(t, session.User)
	assert.Equal(t, user.Email, session.User.Email)

	// Only the hash is stored.
	assert.NotEqual(t, raw, session.TokenHash)
	assert.Equal(t, HashToken(raw), session.TokenHash)
}

func TestSessionRepository_FindActive_UnknownToken(t *testing.T) {
	repo, _ := setupSessionRepo(t, time.Hour)

	_, err := repo.FindActive(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionRepository_FindActive_Expired(t *testing.T) {
	repo, users := setupSessionRepo(t, -time.Minute)
	user := createTestUser(t, users)
	ctx := context.Background()

	raw, err := repo.Create(ctx, user.ID, "", "")
	require.NoError(t, err)

	_, err = repo.FindActive(ctx, raw)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionRepository_RotateInvalidatesOldToken(t *testing.T) {
	repo, users := setupSessionRepo(t, time.Hour)
	user := createTestUser(t, users)
	ctx := context.Background()

	raw, err := repo.Create(ctx, user.ID, "", "")
	require.NoError(t, err)

	session, err := repo.FindActive(ctx, raw)
	require.NoError(t, err)

	newRaw, err := repo.Rotate(ctx, session.ID, session.TokenHash)
	require.NoError(t, err)
	assert.NotEqual(t, raw, newRaw)

	// Pre-rotation token is gone immediately, no grace window.
	_, err = repo.FindActive(ctx, raw)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// New token chains onto the same row.
	rotated, err := repo.FindActive(ctx, newRaw)
	require.NoError(t, err)
	assert.Equal(t, session.ID, rotated.ID)
}

func TestSessionRepository_RotateConflict(t *testing.T) {
	repo, users := setupSessionRepo(t, time.Hour)
	user := createTestUser(t, users)
	ctx := context.Background()

	raw, err := repo.Create(ctx, user.ID, "", "")
	require.NoError(t, err)
	session, err := repo.FindActive(ctx, raw)
	require.NoError(t, err)

	_, err = repo.Rotate(ctx, session.ID, session.TokenHash)
	require.NoError(t, err)

	// Second rotate with the now-stale hash loses the race.
	_, err = repo.Rotate(ctx, session.ID, session.TokenHash)
	assert.ErrorIs(t, err, ErrRotationConflict)
}

func TestSessionRepository_RevokeIdempotent(t *testing.T) {
	repo, users := setupSessionRepo(t, time.Hour)
	user := createTestUser(t, users)
	ctx := context.Background()

	raw, err := repo.Create(ctx, user.ID, "", "")
	require.NoError(t, err)
	session, err := repo.FindActive(ctx, raw)
	require.NoError(t, err)

	require.NoError(t, repo.Revoke(ctx, session.ID))
	require.NoError(t, repo.Revoke(ctx, session.ID))

	_, err = repo.FindActive(ctx, raw)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Revoked is terminal: rotation must refuse.
	_, err = repo.Rotate(ctx, session.ID, session.TokenHash)
	assert.ErrorIs(t, err, ErrRotationConflict)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo, users := setupSessionRepo(t, -time.Minute)
	user := createTestUser(t, users)
	ctx := context.Background()

	_, err := repo.Create(ctx, user.ID, "", "")
	require.NoError(t, err)

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
