package models

import "gorm.io/gorm"

// Customer is an address-book record maintained by admins. It is not linked
// to User and is not populated by checkout.
type Customer struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"omitempty,max=500"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
