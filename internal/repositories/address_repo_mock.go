package repositories

import (
	"fmt"
	"sync"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"

	"github.com/google/uuid"
)

// MockAddressRepository is an in-memory implementation of AddressRepository.
type MockAddressRepository struct {
	addresses map[string]models.UserAddress
	mu        sync.RWMutex
}

// NewMockAddressRepository creates a new instance of MockAddressRepository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[string]models.UserAddress),
	}
}

// GetByUserID returns all addresses saved by a user.
func (r *MockAddressRepository) GetByUserID(userID string) ([]models.UserAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var addresses []models.UserAddress
	for _, a := range r.addresses {
		if a.UserID == userID {
			addresses = append(addresses, a)
		}
	}
	return addresses, nil
}

// Create adds a new address.
func (r *MockAddressRepository) Create(address *models.UserAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	r.addresses[address.ID] = *address
	return nil
}

// Update modifies an existing address.
func (r *MockAddressRepository) Update(address *models.UserAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.addresses[address.ID]
	if !ok {
		return fmt.Errorf("address with ID %s: %w", address.ID, apperrors.ErrNotFound)
	}
	r.addresses[address.ID] = *address
	return nil
}
