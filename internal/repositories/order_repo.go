package repositories

import (
	"giftmart/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted; Update is used only for status and payment transitions.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
}
