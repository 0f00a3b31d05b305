package services

import (
	"errors"
	"fmt"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

// UserService mirrors identity-provider users into local records.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// SyncProfile upserts the local record for an externally authenticated
// user: email and name are refreshed when the user exists, otherwise a new
// record is inserted with the default user role. Idempotent, safe to call
// on every sign-in. Returns the internal user ID either way. Admin
// elevation is out-of-band and never happens here.
func (s *UserService) SyncProfile(externalID, email, name string) (string, error) {
	if externalID == "" {
		return "", fmt.Errorf("external ID is required: %w", apperrors.ErrValidation)
	}

	existing, err := s.repo.GetByExternalID(externalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		user := &models.User{
			ExternalID: externalID,
			Email:      email,
			Name:       name,
			Role:       models.RoleUser,
		}
		if err := s.repo.Create(user); err != nil {
			return "", fmt.Errorf("failed to create user profile: %w", err)
		}
		return user.ID, nil
	}

	existing.Email = email
	existing.Name = name
	if err := s.repo.Update(existing); err != nil {
		return "", fmt.Errorf("failed to update user profile: %w", err)
	}
	return existing.ID, nil
}

// GetByExternalID retrieves a user by their identity-provider key.
func (s *UserService) GetByExternalID(externalID string) (*models.User, error) {
	return s.repo.GetByExternalID(externalID)
}

// GetAllUsers retrieves all users. Admin surface only.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}
