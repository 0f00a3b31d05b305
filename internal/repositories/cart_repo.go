package repositories

import (
	"giftmart/internal/models"
)

// CartRepository defines the interface for cart data access. Each user has
// at most one cart; that invariant is maintained by the service layer, not
// by a store-level uniqueness constraint.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	UpdateItems(cartID string, items []models.CartItem) error
}
