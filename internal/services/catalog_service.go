package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/pkg/cache"
)

const (
	defaultLatestLimit = 4
	newArrivalsLimit   = 8
)

// CatalogService handles business logic related to products.
type CatalogService struct {
	repo  repositories.ProductRepository
	cache *cache.Cache // optional; nil disables caching
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, productCache *cache.Cache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: productCache,
	}
}

// GetAllProducts retrieves all products. No pagination; the catalog is
// assumed small.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product. A miss is not an error: it
// returns (nil, nil) with a logged warning, and callers treat the absence
// as "not available".
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	if s.cache != nil {
		var cached models.Product
		if hit, err := s.cache.Get(context.Background(), "product:"+id, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("Warning: product with ID %s not found", id)
			return nil, nil
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(context.Background(), "product:"+id, product); err != nil {
			log.Printf("Warning: failed to cache product %s: %v", id, err)
		}
	}
	return product, nil
}

// GetFeaturedProducts returns the 4 most recent products. Despite the name
// it does not filter on the featured flag; that matches the storefront's
// homepage behavior.
func (s *CatalogService) GetFeaturedProducts() []models.Product {
	return s.GetLatestProducts(defaultLatestLimit)
}

// GetNewArrivals returns the 8 most recent products.
func (s *CatalogService) GetNewArrivals() []models.Product {
	return s.GetLatestProducts(newArrivalsLimit)
}

// GetLatestProducts returns the limit most recently created products,
// newest first, ties broken by ID descending. It fails soft: these back
// optional homepage widgets, so on any read error it logs and returns an
// empty slice rather than propagating.
func (s *CatalogService) GetLatestProducts(limit int) []models.Product {
	if limit <= 0 {
		limit = defaultLatestLimit
	}

	cacheKey := fmt.Sprintf("latest:%d", limit)
	if s.cache != nil {
		var cached []models.Product
		if hit, err := s.cache.Get(context.Background(), cacheKey, &cached); err == nil && hit {
			return cached
		}
	}

	products, err := s.repo.GetAll()
	if err != nil {
		log.Printf("Error fetching latest products: %v", err)
		return []models.Product{}
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return strings.Compare(products[i].ID, products[j].ID) > 0
	})

	if len(products) > limit {
		products = products[:limit]
	}

	if s.cache != nil {
		if err := s.cache.Set(context.Background(), cacheKey, products); err != nil {
			log.Printf("Warning: failed to cache latest products: %v", err)
		}
	}
	return products
}

// GetAllCategories returns the distinct category labels across all
// products, case-sensitive, sorted ascending.
func (s *CatalogService) GetAllCategories() ([]string, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// CreateProduct creates a new product. InStock is always recomputed from
// Stock server-side; any caller-supplied value is overwritten.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	product.RecomputeInStock()
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// UpdateProduct updates an existing product, recomputing InStock. The
// original creation time is preserved so recency ordering survives edits.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	product.CreatedAt = existing.CreatedAt
	product.RecomputeInStock()
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// DeleteProduct deletes a product by its ID. Carts referencing it keep
// their line items; GetCart substitutes placeholder fields.
func (s *CatalogService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *CatalogService) invalidateCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(context.Background(), "product:*"); err != nil {
		log.Printf("Warning: failed to invalidate product cache: %v", err)
	}
	if err := s.cache.DeletePattern(context.Background(), "latest:*"); err != nil {
		log.Printf("Warning: failed to invalidate latest-products cache: %v", err)
	}
}
