package repositories

import (
	"giftmart/internal/models"
)

// AddressRepository defines the interface for user address data access.
type AddressRepository interface {
	GetByUserID(userID string) ([]models.UserAddress, error)
	Create(address *models.UserAddress) error
	Update(address *models.UserAddress) error
}
