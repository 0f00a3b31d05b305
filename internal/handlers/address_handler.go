package handlers

import (
	"log"

	"giftmart/internal/models"
	"giftmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the user's saved address.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// SaveAddressRequest is the payload for the address upsert at checkout.
type SaveAddressRequest struct {
	models.ShippingAddress
	IsDefault bool `json:"is_default"`
}

// RegisterRoutes registers the address routes; both require a signed-in
// user.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	addressRoutes := router.Group("/addresses", authRequired)
	addressRoutes.Get("/", h.HandleGetAddresses)
	addressRoutes.Put("/", h.HandleSaveAddress)
}

// HandleGetAddresses returns the user's saved addresses (zero or one in
// practice).
func (h *AddressHandler) HandleGetAddresses(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	addresses, err := h.service.GetUserAddresses(userID)
	if err != nil {
		log.Printf("Error getting addresses for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not retrieve addresses")
	}
	if addresses == nil {
		addresses = []models.UserAddress{}
	}
	return c.JSON(addresses)
}

// HandleSaveAddress upserts the user's default shipping address.
func (h *AddressHandler) HandleSaveAddress(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req SaveAddressRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.SaveUserAddress(userID, req.ShippingAddress, req.IsDefault); err != nil {
		log.Printf("Error saving address for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not save address")
	}
	return c.JSON(fiber.Map{
		"message": "Address saved successfully",
	})
}
