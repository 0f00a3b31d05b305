package handlers

import (
	"log"

	"giftmart/internal/models"
	"giftmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// ProductRequest is the payload for product create/update. InStock is
// deliberately absent: it is always recomputed server-side from Stock.
// Price has no positivity rule; the storefront UI validates it and the
// server preserves whatever it is sent (known trust-boundary gap).
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Category    string  `json:"category" validate:"required,max=100"`
	Price       float64 `json:"price"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,max=500"`
	Featured    bool    `json:"featured"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=1"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int     `json:"reviews" validate:"gte=0"`
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// require an authenticated admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	// Static paths before the :id wildcard.
	productRoutes.Get("/featured", h.HandleGetFeatured)
	productRoutes.Get("/latest", h.HandleGetLatest)
	productRoutes.Get("/new-arrivals", h.HandleGetNewArrivals)
	productRoutes.Get("/categories", h.HandleGetCategories)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	productRoutes.Post("/", authRequired, adminRequired, h.HandleCreateProduct)
	productRoutes.Put("/:id", authRequired, adminRequired, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, adminRequired, h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return errorResponse(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetFeatured retrieves the homepage featured widget products. Fails
// soft: the service returns an empty slice on read errors.
func (h *ProductHandler) HandleGetFeatured(c *fiber.Ctx) error {
	return c.JSON(h.service.GetFeaturedProducts())
}

// HandleGetLatest retrieves the most recent products, default 4.
func (h *ProductHandler) HandleGetLatest(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	return c.JSON(h.service.GetLatestProducts(limit))
}

// HandleGetNewArrivals retrieves the 8 newest products.
func (h *ProductHandler) HandleGetNewArrivals(c *fiber.Ctx) error {
	return c.JSON(h.service.GetNewArrivals())
}

// HandleGetCategories retrieves the distinct category labels.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return errorResponse(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

// HandleGetProductByID retrieves a single product. An unknown ID is a 404,
// not a server error.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return errorResponse(c, err, "Could not retrieve product")
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product := req.toModel()
	if err := h.service.CreateProduct(product); err != nil {
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product := req.toModel()
	product.ID = productID
	if err := h.service.UpdateProduct(product); err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		return errorResponse(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return errorResponse(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

func (r ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Description: r.Description,
		Stock:       r.Stock,
		Image:       r.Image,
		Featured:    r.Featured,
		Discount:    r.Discount,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
	}
}
