package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftmart/internal/handlers"
	"giftmart/internal/middleware"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

// testEnv wires the full HTTP surface over in-memory repositories, the same
// way main wires it over GORM.
type testEnv struct {
	app         *fiber.App
	productRepo *repositories.MockProductRepository
	userRepo    *repositories.MockUserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository()
	addressRepo := repositories.NewMockAddressRepository()
	userRepo := repositories.NewMockUserRepository()
	customerRepo := repositories.NewMockCustomerRepository()

	catalogService := services.NewCatalogService(productRepo, nil)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, nil)
	addressService := services.NewAddressService(addressRepo)
	userService := services.NewUserService(userRepo)
	customerService := services.NewCustomerService(customerRepo)
	authService := services.NewAuthService(testJWTSecret)

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired(userService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(catalogService).RegisterRoutes(apiV1, authRequired, adminRequired)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1, authRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1, authRequired, adminRequired)
	handlers.NewAddressHandler(addressService).RegisterRoutes(apiV1, authRequired)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1, authRequired, adminRequired)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(apiV1, authRequired, adminRequired)

	return &testEnv{
		app:         app,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// seedUser inserts a synced user record and returns a token signed against
// the same external ID.
func (env *testEnv) seedUser(t *testing.T, externalID string, role models.Role) string {
	t.Helper()

	err := env.userRepo.Create(&models.User{
		ExternalID: externalID,
		Email:      externalID + "@example.com",
		Name:       "Test User",
		Role:       role,
	})
	require.NoError(t, err)
	return signTestToken(t, externalID)
}

func signTestToken(t *testing.T, externalID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   externalID,
		"email": externalID + "@example.com",
		"name":  "Test User",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func testShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "555-0100",
		Address: "1 Analytical Way",
		City:    "London",
		State:   "LDN",
		ZipCode: "10001",
	}
}

func TestProductMutations_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/products", "", handlers.ProductRequest{
		Name:     "Mug",
		Category: "Kitchen",
		Price:    9.5,
		Stock:    3,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProductMutations_RejectNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "ext-regular", models.RoleUser)

	resp := env.request(t, http.MethodPost, "/api/v1/products", token, handlers.ProductRequest{
		Name:     "Mug",
		Category: "Kitchen",
		Price:    9.5,
		Stock:    3,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProductMutations_RejectUnsyncedUser(t *testing.T) {
	env := newTestEnv(t)
	// Valid token, but no synced record to read the role from.
	token := signTestToken(t, "ext-ghost")

	resp := env.request(t, http.MethodDelete, "/api/v1/products/some-id", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProductLifecycle_AsAdmin(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedUser(t, "ext-admin", models.RoleAdmin)

	resp := env.request(t, http.MethodPost, "/api/v1/products", adminToken, handlers.ProductRequest{
		Name:     "Scented Candle",
		Category: "Home",
		Price:    12.0,
		Stock:    5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.InStock, "stock 5 must derive in-stock")

	// Public read, no token needed.
	resp = env.request(t, http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Updating to zero stock flips the derived flag.
	resp = env.request(t, http.MethodPut, "/api/v1/products/"+created.ID, adminToken, handlers.ProductRequest{
		Name:     "Scented Candle",
		Category: "Home",
		Price:    12.0,
		Stock:    0,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.False(t, updated.InStock)

	resp = env.request(t, http.MethodDelete, "/api/v1/products/"+created.ID, adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCartFlow_MergesRepeatAdds(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "ext-shopper", models.RoleUser)

	product := &models.Product{Name: "Tea Set", Category: "Kitchen", Price: 30, Stock: 10}
	product.RecomputeInStock()
	require.NoError(t, env.productRepo.Create(product))

	// Empty cart before the first add: same schema as a populated one.
	resp := env.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var emptyBody map[string]interface{}
	decodeBody(t, resp, &emptyBody)
	for _, key := range []string{"id", "user_id", "items", "total_items", "subtotal"} {
		assert.Contains(t, emptyBody, key)
	}
	assert.Empty(t, emptyBody["items"])

	resp = env.request(t, http.MethodPost, "/api/v1/cart/items", token, handlers.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  2,
		Price:     30,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Repeat add with a different price merges the quantity but keeps the
	// first-add price.
	resp = env.request(t, http.MethodPost, "/api/v1/cart/items", token, handlers.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  1,
		Price:     25,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cart models.CartView
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 30.0, cart.Items[0].Price)
	assert.Equal(t, "Tea Set", cart.Items[0].Name)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 90.0, cart.Subtotal)

	resp = env.request(t, http.MethodDelete, "/api/v1/cart", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)
}

func TestCartQuantityUpdate_NoServerSideBound(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "ext-shopper", models.RoleUser)

	product := &models.Product{Name: "Tea Set", Category: "Kitchen", Price: 30, Stock: 10}
	product.RecomputeInStock()
	require.NoError(t, env.productRepo.Create(product))

	resp := env.request(t, http.MethodPost, "/api/v1/cart/items", token, handlers.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  2,
		Price:     30,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Zero and negative quantities pass through; the client owns the rules.
	for _, quantity := range []int{0, -2} {
		resp = env.request(t, http.MethodPatch, "/api/v1/cart/items/"+product.ID, token, handlers.UpdateQuantityRequest{
			Quantity: quantity,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = env.request(t, http.MethodGet, "/api/v1/cart", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var cart models.CartView
		decodeBody(t, resp, &cart)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, quantity, cart.Items[0].Quantity)
	}
}

func TestCheckoutFlow_ConfirmedPayment(t *testing.T) {
	env := newTestEnv(t)
	shopperToken := env.seedUser(t, "ext-buyer", models.RoleUser)
	adminToken := env.seedUser(t, "ext-admin", models.RoleAdmin)

	resp := env.request(t, http.MethodPost, "/api/v1/orders", shopperToken, handlers.CreateOrderRequest{
		Items:            []models.OrderItem{{ProductID: "p1", Quantity: 2, Price: 10}},
		Total:            20,
		ShippingAddress:  testShippingAddress(),
		PaymentMethod:    "card",
		PaymentReference: "ref123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	require.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, order.PaymentDate)

	// Admin ships the order; the payment fields must survive untouched.
	resp = env.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/status", order.ID), adminToken, handlers.UpdateStatusRequest{
		Status: models.OrderStatusShipped,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/orders/"+order.ID, shopperToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var shipped models.Order
	decodeBody(t, resp, &shipped)
	assert.Equal(t, models.OrderStatusShipped, shipped.Status)
	assert.Equal(t, models.PaymentStatusPaid, shipped.PaymentStatus)

	resp = env.request(t, http.MethodGet, "/api/v1/orders/mine", shopperToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var mine []models.Order
	decodeBody(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
}

func TestCheckoutFlow_PendingPayment(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "ext-buyer", models.RoleUser)

	resp := env.request(t, http.MethodPost, "/api/v1/orders", token, handlers.CreateOrderRequest{
		Items:           []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 15}},
		Total:           15,
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   "transfer",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Nil(t, order.PaymentDate)
}

func TestOrderStatusUpdate_RejectsNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "ext-buyer", models.RoleUser)

	resp := env.request(t, http.MethodPost, "/api/v1/orders", token, handlers.CreateOrderRequest{
		Items:           []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 15}},
		Total:           15,
		ShippingAddress: testShippingAddress(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)

	resp = env.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/status", order.ID), token, handlers.UpdateStatusRequest{
		Status: models.OrderStatusShipped,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUserSync_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	token := signTestToken(t, "ext-new")

	resp := env.request(t, http.MethodPost, "/api/v1/users/sync", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var first map[string]string
	decodeBody(t, resp, &first)
	require.NotEmpty(t, first["user_id"])

	resp = env.request(t, http.MethodPost, "/api/v1/users/sync", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var second map[string]string
	decodeBody(t, resp, &second)
	assert.Equal(t, first["user_id"], second["user_id"])

	resp = env.request(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "ext-new", me.ExternalID)
	assert.Equal(t, models.RoleUser, me.Role)
}

func TestCustomerBook_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedUser(t, "ext-admin", models.RoleAdmin)
	userToken := env.seedUser(t, "ext-regular", models.RoleUser)

	resp := env.request(t, http.MethodGet, "/api/v1/customers", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/customers", adminToken, handlers.CustomerRequest{
		Name:  "Grace Hopper",
		Email: "grace@example.com",
		Phone: "555-0101",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Customer
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)

	resp = env.request(t, http.MethodPut, "/api/v1/customers/"+created.ID, adminToken, handlers.CustomerRequest{
		Name:  "Grace Hopper",
		Email: "grace.h@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/customers", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var customers []models.Customer
	decodeBody(t, resp, &customers)
	require.Len(t, customers, 1)
	assert.Equal(t, "grace.h@example.com", customers[0].Email)

	resp = env.request(t, http.MethodDelete, "/api/v1/customers/"+created.ID, adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAddressUpsert_KeepsSingleRecord(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "ext-shopper", models.RoleUser)

	first := handlers.SaveAddressRequest{ShippingAddress: testShippingAddress(), IsDefault: true}
	resp := env.request(t, http.MethodPut, "/api/v1/addresses", token, first)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	second := first
	second.City = "Cambridge"
	resp = env.request(t, http.MethodPut, "/api/v1/addresses", token, second)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/addresses", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var addresses []models.UserAddress
	decodeBody(t, resp, &addresses)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Cambridge", addresses[0].City)
}
