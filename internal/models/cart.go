package models

import "gorm.io/gorm"

// CartItem is a single line in a user's cart. Price is captured when the
// item is first added and is never re-read from the catalog afterwards
// (pricing-snapshot policy).
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Cart holds the line items for one user. At most one cart exists per user;
// clearing a cart empties Items but keeps the record.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"index;type:varchar(100)"`
	Items      []CartItem `json:"items" gorm:"serializer:json"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItemDetail is a cart item joined with catalog fields for display.
// Items whose product has been deleted keep placeholder fields rather than
// being dropped, so counts and totals stay stable.
type CartItemDetail struct {
	CartItem
	Name        string `json:"name"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// CartView is the enriched cart returned to clients. TotalItems and
// Subtotal are derived, never stored.
type CartView struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Items      []CartItemDetail `json:"items"`
	TotalItems int              `json:"total_items"`
	Subtotal   float64          `json:"subtotal"`
}
