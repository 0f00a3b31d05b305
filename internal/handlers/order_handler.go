package handlers

import (
	"log"

	"giftmart/internal/models"
	"giftmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CreateOrderRequest is the checkout payload. Items and total are taken
// from the client's cart as-is; a non-empty payment reference means the
// payment widget has already confirmed the charge.
type CreateOrderRequest struct {
	Items            []models.OrderItem     `json:"items" validate:"required,min=1,dive"`
	Total            float64                `json:"total" validate:"gte=0"`
	ShippingAddress  models.ShippingAddress `json:"shipping_address" validate:"required"`
	PaymentMethod    string                 `json:"payment_method"`
	PaymentReference string                 `json:"payment_reference"`
}

// UpdateStatusRequest is the payload for an order status transition.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// UpdatePaymentRequest is the payload for a payment status transition.
type UpdatePaymentRequest struct {
	PaymentStatus    models.PaymentStatus `json:"payment_status" validate:"required"`
	PaymentReference string               `json:"payment_reference"`
}

// RegisterRoutes registers the order routes. Checkout and own-order reads
// need a signed-in user; listing all orders and transitions are admin-only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", authRequired, h.HandleCreateOrder)
	orderRoutes.Get("/mine", authRequired, h.HandleGetMyOrders)
	orderRoutes.Get("/", authRequired, adminRequired, h.HandleGetOrders)
	orderRoutes.Get("/:id", authRequired, h.HandleGetOrderByID)
	orderRoutes.Get("/:id/shipping", authRequired, h.HandleGetShippingInfo)
	orderRoutes.Patch("/:id/status", authRequired, adminRequired, h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/:id/payment", authRequired, adminRequired, h.HandleUpdatePaymentStatus)
}

// HandleCreateOrder creates a new order from the checkout payload.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	createdOrder, err := h.service.CreateOrder(services.CreateOrderInput{
		UserID:           userID,
		Items:            req.Items,
		Total:            req.Total,
		ShippingAddress:  req.ShippingAddress,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleGetOrders retrieves all orders (admin).
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return errorResponse(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetMyOrders retrieves the signed-in user's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	orders, err := h.service.GetOrdersByUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return errorResponse(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return errorResponse(c, err, "Could not retrieve order")
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	return c.JSON(order)
}

// HandleGetShippingInfo retrieves the shipping address of an order.
func (h *OrderHandler) HandleGetShippingInfo(c *fiber.Ctx) error {
	orderID := c.Params("id")
	address, err := h.service.GetShippingInfo(orderID)
	if err != nil {
		log.Printf("Error getting shipping info for order %s: %v", orderID, err)
		return errorResponse(c, err, "Could not retrieve shipping information")
	}
	return c.JSON(address)
}

// HandleUpdateOrderStatus updates the fulfillment status of an order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateOrderStatus(orderID, req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return errorResponse(c, err, "Could not update order status")
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"status":  req.Status,
	})
}

// HandleUpdatePaymentStatus updates the payment status of an order.
func (h *OrderHandler) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdatePaymentStatus(orderID, req.PaymentStatus, req.PaymentReference); err != nil {
		log.Printf("Error updating payment status for order %s: %v", orderID, err)
		return errorResponse(c, err, "Could not update payment status")
	}
	return c.JSON(fiber.Map{
		"message":        "Payment status updated successfully",
		"payment_status": req.PaymentStatus,
	})
}
