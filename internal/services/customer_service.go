package services

import (
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

// CustomerService handles the admin-maintained customer address book. It is
// intentionally not linked to User records and is never written by checkout.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// CreateCustomer creates a new customer.
func (s *CustomerService) CreateCustomer(customer *models.Customer) error {
	return s.repo.Create(customer)
}

// UpdateCustomer updates an existing customer, keeping the original
// creation time.
func (s *CustomerService) UpdateCustomer(customer *models.Customer) error {
	existing, err := s.repo.GetByID(customer.ID)
	if err != nil {
		return err
	}
	customer.CreatedAt = existing.CreatedAt
	return s.repo.Update(customer)
}

// DeleteCustomer deletes a customer by its ID.
func (s *CustomerService) DeleteCustomer(id string) error {
	return s.repo.Delete(id)
}
