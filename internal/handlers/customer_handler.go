package handlers

import (
	"log"

	"giftmart/internal/models"
	"giftmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for the admin customer book.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CustomerRequest is the payload for customer create/update.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
}

// RegisterRoutes registers the customer routes; the whole surface is
// admin-only.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	customerRoutes := router.Group("/customers", authRequired, adminRequired)
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

// HandleGetCustomers retrieves all customers.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		log.Printf("Error getting all customers: %v", err)
		return errorResponse(c, err, "Could not retrieve customers")
	}
	return c.JSON(customers)
}

// HandleCreateCustomer creates a new customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing customer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.service.CreateCustomer(customer); err != nil {
		log.Printf("Error creating customer: %v", err)
		return errorResponse(c, err, "Could not create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer updates an existing customer.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	customerID := c.Params("id")

	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing customer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	customer := &models.Customer{
		ID:      customerID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.service.UpdateCustomer(customer); err != nil {
		log.Printf("Error updating customer %s: %v", customerID, err)
		return errorResponse(c, err, "Could not update customer")
	}
	return c.JSON(customer)
}

// HandleDeleteCustomer deletes a customer by its ID.
func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	customerID := c.Params("id")
	if err := h.service.DeleteCustomer(customerID); err != nil {
		log.Printf("Error deleting customer %s: %v", customerID, err)
		return errorResponse(c, err, "Could not delete customer")
	}
	return c.JSON(fiber.Map{
		"message": "Customer deleted successfully",
	})
}
