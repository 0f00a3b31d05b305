package repositories

import (
	"errors"
	"fmt"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the cart for a user. The user index is non-unique;
// the first match is taken.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Create creates a new cart in the database.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// UpdateItems replaces the items of an existing cart. The write goes through
// Save on the loaded record; a single-column Update would bind the raw slice
// and skip the JSON serializer on Items.
func (r *GORMCartRepository) UpdateItems(cartID string, items []models.CartItem) error {
	var cart models.Cart
	if err := r.db.First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart with ID %s: %w", cartID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	cart.Items = items
	if err := r.db.Save(&cart).Error; err != nil {
		return fmt.Errorf("failed to update cart items: %w", err)
	}
	return nil
}
