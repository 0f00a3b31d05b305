package services

import (
	"errors"
	"fmt"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

// placeholderProductName substitutes for the name of a product that was
// deleted from the catalog after being added to a cart.
const placeholderProductName = "Product not available"

// CartService handles the per-user cart. Each operation is a single
// read-modify-write against the store; two concurrent adds for the same
// user can lose an increment (last write wins on the items column). That is
// a known limitation of this design, not something the service guards
// against.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart with items enriched from the catalog, or
// (nil, nil) when the user has no cart yet. Items whose product no longer
// exists are kept with placeholder fields so the item count and subtotal
// stay stable after catalog deletions.
func (s *CartService) GetCart(userID string) (*models.CartView, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	view := &models.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.CartItemDetail, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		detail := models.CartItemDetail{CartItem: item}
		product, err := s.productRepo.GetByID(item.ProductID)
		switch {
		case err == nil:
			detail.Name = product.Name
			detail.Image = product.Image
			detail.Category = product.Category
			detail.Description = product.Description
		case errors.Is(err, apperrors.ErrNotFound):
			// Product deleted after it was added; keep the line item.
			detail.Name = placeholderProductName
			detail.Image = ""
			detail.Category = ""
		default:
			return nil, fmt.Errorf("failed to enrich cart item %s: %w", item.ProductID, err)
		}

		view.Items = append(view.Items, detail)
		view.TotalItems += item.Quantity
		view.Subtotal += item.Price * float64(item.Quantity)
	}

	return view, nil
}

// AddToCart adds quantity of a product at the given unit price. If the
// product is already in the cart only the quantity is incremented; the
// stored price keeps the value captured on the first add (pricing-snapshot
// policy). A first add creates the cart.
func (s *CartService) AddToCart(userID, productID string, quantity int, price float64) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", apperrors.ErrValidation)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			newCart := &models.Cart{
				UserID: userID,
				Items: []models.CartItem{
					{ProductID: productID, Quantity: quantity, Price: price},
				},
			}
			return s.cartRepo.Create(newCart)
		}
		return err
	}

	items := cart.Items
	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{ProductID: productID, Quantity: quantity, Price: price})
	}

	return s.cartRepo.UpdateItems(cart.ID, items)
}

// RemoveFromCart filters the product out of the cart. It is a no-op when
// the cart or the item is absent.
func (s *CartService) RemoveFromCart(userID, productID string) error {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return s.cartRepo.UpdateItems(cart.ID, items)
}

// UpdateItemQuantity replaces the quantity of a matching item. No lower
// bound is enforced here; the client is expected to prevent quantities
// below 1. A missing cart or item is a no-op.
func (s *CartService) UpdateItemQuantity(userID, productID string, quantity int) error {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	items := cart.Items
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}
	return s.cartRepo.UpdateItems(cart.ID, items)
}

// ClearCart empties the cart's items. The cart record itself persists.
func (s *CartService) ClearCart(userID string) error {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.UpdateItems(cart.ID, []models.CartItem{})
}
