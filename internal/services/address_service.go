package services

import (
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

// AddressService manages the user's saved shipping address. The schema
// allows several addresses per user but SaveUserAddress always patches the
// first existing record, so each user effectively has a single default.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{
		repo: repo,
	}
}

// GetUserAddresses returns the addresses stored for a user. In practice
// zero or one.
func (s *AddressService) GetUserAddresses(userID string) ([]models.UserAddress, error) {
	return s.repo.GetByUserID(userID)
}

// SaveUserAddress upserts the user's address: the first existing record is
// patched in place, otherwise a new one is inserted. Calling twice never
// creates a second record.
func (s *AddressService) SaveUserAddress(userID string, addr models.ShippingAddress, isDefault bool) error {
	existing, err := s.repo.GetByUserID(userID)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		updated := existing[0]
		updated.Name = addr.Name
		updated.Email = addr.Email
		updated.Phone = addr.Phone
		updated.Address = addr.Address
		updated.City = addr.City
		updated.State = addr.State
		updated.ZipCode = addr.ZipCode
		updated.IsDefault = isDefault
		return s.repo.Update(&updated)
	}

	return s.repo.Create(&models.UserAddress{
		UserID:    userID,
		Name:      addr.Name,
		Email:     addr.Email,
		Phone:     addr.Phone,
		Address:   addr.Address,
		City:      addr.City,
		State:     addr.State,
		ZipCode:   addr.ZipCode,
		IsDefault: isDefault,
	})
}
