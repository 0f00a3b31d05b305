package services_test

import (
	"testing"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	return services.NewCartService(cartRepo, productRepo), productRepo
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, id, name string, price float64) {
	t.Helper()
	p := models.Product{ID: id, Name: name, Category: "Gifts", Price: price, Stock: 10, Image: "https://cdn.example.com/" + id + ".jpg", Description: "A " + name}
	p.RecomputeInStock()
	require.NoError(t, repo.Create(&p))
}

func TestCartService_AddMergesQuantityAndKeepsFirstPrice(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "p1", "Gift Box", 10)

	require.NoError(t, service.AddToCart("user-a", "p1", 1, 10))
	// Repeat add with a different price: quantity merges, price does not move.
	require.NoError(t, service.AddToCart("user-a", "p1", 2, 99))

	cart, err := service.GetCart("user-a")
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].Price)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 30.0, cart.Subtotal)
}

func TestCartService_AddAppendsNewProducts(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "p1", "Gift Box", 10)
	seedProduct(t, productRepo, "p2", "Teddy Bear", 25)

	require.NoError(t, service.AddToCart("user-a", "p1", 1, 10))
	require.NoError(t, service.AddToCart("user-a", "p2", 2, 25))

	cart, err := service.GetCart("user-a")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 60.0, cart.Subtotal)
}

func TestCartService_AddRejectsNonPositiveQuantity(t *testing.T) {
	service, _ := newCartFixture(t)

	err := service.AddToCart("user-a", "p1", 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCartService_GetCartKeepsItemsForDeletedProducts(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "p1", "Gift Box", 10)

	require.NoError(t, service.AddToCart("user-a", "p1", 2, 10))
	require.NoError(t, productRepo.Delete("p1"))

	cart, err := service.GetCart("user-a")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Product not available", cart.Items[0].Name)
	assert.Empty(t, cart.Items[0].Image)
	assert.Empty(t, cart.Items[0].Category)
	// Count and subtotal stay stable after the catalog deletion.
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 20.0, cart.Subtotal)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "p1", "Gift Box", 10)

	require.NoError(t, service.AddToCart("user-a", "p1", 1, 10))
	require.NoError(t, service.UpdateItemQuantity("user-a", "p1", 5))

	cart, err := service.GetCart("user-a")
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Unknown product or absent cart are no-ops.
	assert.NoError(t, service.UpdateItemQuantity("user-a", "ghost", 3))
	assert.NoError(t, service.UpdateItemQuantity("user-b", "p1", 3))
}

func TestCartService_RemoveIsNoOpWhenAbsent(t *testing.T) {
	service, _ := newCartFixture(t)

	assert.NoError(t, service.RemoveFromCart("user-a", "p1"))
	cart, err := service.GetCart("user-a")
	assert.NoError(t, err)
	assert.Nil(t, cart)
}

func TestCartService_ClearKeepsCartRecord(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "p1", "Gift Box", 10)

	require.NoError(t, service.AddToCart("user-a", "p1", 2, 10))
	require.NoError(t, service.ClearCart("user-a"))

	cart, err := service.GetCart("user-a")
	require.NoError(t, err)
	require.NotNil(t, cart, "clearing must empty the cart, not delete it")
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Equal(t, 0.0, cart.Subtotal)
}

func TestCartService_AddRemoveRoundTrip(t *testing.T) {
	service, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "p1", "Gift Box", 10)

	require.NoError(t, service.AddToCart("user-a", "p1", 1, 10))
	cart, err := service.GetCart("user-a")
	require.NoError(t, err)
	assert.Equal(t, 10.0, cart.Subtotal)

	require.NoError(t, service.AddToCart("user-a", "p1", 2, 10))
	cart, err = service.GetCart("user-a")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 30.0, cart.Subtotal)

	require.NoError(t, service.RemoveFromCart("user-a", "p1"))
	cart, err = service.GetCart("user-a")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Subtotal)
}
