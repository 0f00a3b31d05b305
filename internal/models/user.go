package models

import "gorm.io/gorm"

// Role controls access to the admin surface. Elevation to admin is
// out-of-band; sign-in sync always defaults to RoleUser.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User mirrors the identity provider's view of a signed-in user. ExternalID
// is the provider's user key; email and name are refreshed on every sync.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ExternalID string `json:"external_id" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	Email      string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Name       string `json:"name" gorm:"type:varchar(100)"`
	Role       Role   `json:"role" gorm:"type:varchar(20)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
