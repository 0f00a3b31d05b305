package handlers

import (
	"log"

	"giftmart/internal/models"
	"giftmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the current user's cart. The user
// identity always comes from the verified token, never from the payload.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// AddToCartRequest is the payload for adding an item. The price is the unit
// price the client saw at add time; it is snapshotted into the cart.
type AddToCartRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// UpdateQuantityRequest is the payload for replacing an item's quantity. No
// bound is enforced server-side; the client owns the quantity rules.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// RegisterRoutes registers the cart routes; all of them require a signed-in
// user.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the enriched cart, or an empty one when the user
// has never added an item.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	cart, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not retrieve cart")
	}
	if cart == nil {
		// Same schema as a populated cart.
		return c.JSON(models.CartView{
			UserID: userID,
			Items:  []models.CartItemDetail{},
		})
	}
	return c.JSON(cart)
}

// HandleAddItem adds a product to the cart, merging quantities on repeat
// adds.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.AddToCart(userID, req.ProductID, req.Quantity, req.Price); err != nil {
		log.Printf("Error adding to cart for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
	})
}

// HandleUpdateQuantity replaces the quantity of a cart item.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productId")

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateItemQuantity(userID, productID, req.Quantity); err != nil {
		log.Printf("Error updating cart quantity for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not update item quantity")
	}
	return c.JSON(fiber.Map{
		"message": "Item quantity updated",
	})
}

// HandleRemoveItem removes a product from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productId")

	if err := h.service.RemoveFromCart(userID, productID); err != nil {
		log.Printf("Error removing cart item for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not remove item from cart")
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	if err := h.service.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not clear cart")
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
