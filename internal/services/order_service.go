package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/pkg/rabbitmq"
)

// OrderService handles the order lifecycle: snapshot creation at checkout
// and status/payment transitions afterwards.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // optional; nil skips event publishing
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// CreateOrderInput carries the checkout payload into CreateOrder. Items and
// total come from the client's cart as-is; no server-side re-pricing or
// stock verification is performed. The payment reference is trusted as
// proof of a successful charge (the payment widget has already confirmed it
// by the time a reference exists); there is no callback to the payment
// provider.
type CreateOrderInput struct {
	UserID           string
	Items            []models.OrderItem
	Total            float64
	ShippingAddress  models.ShippingAddress
	PaymentMethod    string
	PaymentReference string
}

// CreateOrder builds an immutable order snapshot. With a payment reference
// the order starts at processing/paid with the payment date stamped;
// without one it starts at pending/pending with no payment fields. This is
// the only place order status and payment status are jointly initialized.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if in.UserID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("user ID and at least one item are required: %w", apperrors.ErrValidation)
	}

	order := &models.Order{
		UserID:          in.UserID,
		Items:           in.Items,
		Total:           in.Total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	if in.PaymentReference != "" {
		now := time.Now()
		order.Status = models.OrderStatusProcessing
		order.PaymentStatus = models.PaymentStatusPaid
		order.PaymentReference = in.PaymentReference
		order.PaymentDate = &now
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id":       order.ID,
		"user_id":        order.UserID,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"total":          order.Total,
	})

	return order, nil
}

// GetAllOrders retrieves all orders. Unbounded; admin surface only.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order, or (nil, nil) when the ID does not
// resolve to a live record.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// GetOrdersByUser retrieves all orders placed by a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetShippingInfo returns the shipping address embedded in an order. Unlike
// the soft read paths this raises a typed not-found error on a miss.
func (s *OrderService) GetShippingInfo(id string) (*models.ShippingAddress, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &order.ShippingAddress, nil
}

// UpdateOrderStatus sets the order status to any of the four enum values.
// Transitions are deliberately unconstrained (an admin may move an order
// backwards); models.OrderStatusTransitions documents the forward-only
// table for a future strict mode.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid order status %q: %w", status, apperrors.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	return nil
}

// UpdatePaymentStatus sets the payment status and stores the reference when
// one is given. A transition to paid additionally stamps the payment date
// and force-advances the order status to processing regardless of its
// current value; a payment confirmation always nudges fulfillment forward,
// even on orders already shipped or delivered.
func (s *OrderService) UpdatePaymentStatus(id string, paymentStatus models.PaymentStatus, paymentReference string) error {
	if !paymentStatus.Valid() {
		return fmt.Errorf("invalid payment status %q: %w", paymentStatus, apperrors.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	order.PaymentStatus = paymentStatus
	if paymentReference != "" {
		order.PaymentReference = paymentReference
	}
	if paymentStatus == models.PaymentStatusPaid {
		now := time.Now()
		order.PaymentDate = &now
		order.Status = models.OrderStatusProcessing
	}

	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to update payment status for order %s: %w", id, err)
	}

	s.publishEvent("order.payment_updated", map[string]interface{}{
		"order_id":       order.ID,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	})

	return nil
}

// publishEvent sends an order lifecycle event best-effort: failures are
// logged, never surfaced to the caller.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
