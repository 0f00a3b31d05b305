package models

import "gorm.io/gorm"

// Product represents a product in the catalog. InStock is derived from Stock
// and recomputed server-side on every create/update; clients must not be
// trusted to set it.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Category    string  `json:"category" validate:"required,max=100"`
	Price       float64 `json:"price"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,max=500"`
	Featured    bool    `json:"featured"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=1"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int     `json:"reviews" validate:"gte=0"`
	InStock     bool    `json:"inStock"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// RecomputeInStock re-derives the InStock flag from the current stock level.
func (p *Product) RecomputeInStock() {
	p.InStock = p.Stock > 0
}
