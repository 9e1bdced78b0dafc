package repositories

import (
	"testing"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"
	"kpi-tracker-backend/users/services"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestUserRepo(t *testing.T) UserRepository {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewUserRepository(db)
}

func TestEnsureAdminUserSeedsEmptyTable(t *testing.T) {
	repo := newTestUserRepo(t)

	require.NoError(t, repo.EnsureAdminUser())

	admin, err := repo.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, services.CheckPasswordHash("admin123", admin.PasswordHash))
}

func TestEnsureAdminUserDoesNotResurrectDeletedAdmin(t *testing.T) {
	repo := newTestUserRepo(t)
	require.NoError(t, repo.EnsureAdminUser())

	hash, err := services.HashPassword("op-pass-1")
	require.NoError(t, err)
	operator, err := repo.CreateUser(&models.User{
		Username:     "operator",
		PasswordHash: hash,
		IsAdmin:      true,
	})
	require.NoError(t, err)
	require.NotZero(t, operator.ID)

	admin, err := repo.GetUserByUsername("admin")
	require.NoError(t, err)
	affected, err := repo.DeleteUser(admin.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	// Accounts remain, so the default credentials must not come back.
	require.NoError(t, repo.EnsureAdminUser())
	_, err = repo.GetUserByUsername("admin")
	assert.Error(t, err)
}

func TestEnsureAdminUserIsIdempotent(t *testing.T) {
	repo := newTestUserRepo(t)
	require.NoError(t, repo.EnsureAdminUser())
	require.NoError(t, repo.EnsureAdminUser())

	users, err := repo.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	repo := newTestUserRepo(t)

	_, err := repo.CreateUser(&models.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.CreateUser(&models.User{Username: "alice", PasswordHash: "h2"})
	require.Error(t, err)
	assert.Equal(t, "Username already exists.", err.Error())
}
