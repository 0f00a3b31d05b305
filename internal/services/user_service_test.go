package services_test

import (
	"testing"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_SyncProfileIsIdempotent(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := services.NewUserService(repo)

	id1, err := service.SyncProfile("ext-1", "ada@example.com", "Ada")
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	user, err := service.GetByExternalID("ext-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	// Second sync refreshes claims in place and returns the same internal ID.
	id2, err := service.SyncProfile("ext-1", "ada+new@example.com", "Ada L")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	user, err = service.GetByExternalID("ext-1")
	require.NoError(t, err)
	assert.Equal(t, "ada+new@example.com", user.Email)
	assert.Equal(t, "Ada L", user.Name)

	users, err := service.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_SyncProfileDoesNotDemoteAdmins(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := services.NewUserService(repo)

	admin := models.User{ExternalID: "ext-admin", Email: "ops@example.com", Name: "Ops", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(&admin))

	_, err := service.SyncProfile("ext-admin", "ops@example.com", "Ops")
	require.NoError(t, err)

	user, err := service.GetByExternalID("ext-admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUserService_SyncProfileRequiresExternalID(t *testing.T) {
	service := services.NewUserService(repositories.NewMockUserRepository())

	_, err := service.SyncProfile("", "ada@example.com", "Ada")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_GetByExternalIDMiss(t *testing.T) {
	service := services.NewUserService(repositories.NewMockUserRepository())

	_, err := service.GetByExternalID("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
