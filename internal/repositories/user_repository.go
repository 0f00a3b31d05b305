package repositories

import "giftmart/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByExternalID(externalID string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
}
