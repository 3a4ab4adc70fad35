package services

import (
	"errors"
	"strings"
	"time"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/skbags/atelier/pkg/cache"
	"gorm.io/gorm"
)

const (
	categoriesCacheKey = "atelier:categories"
	categoriesCacheTTL = 10 * time.Minute
)

// ProductInput carries the fields for creating a product.
type ProductInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	Description   string   `json:"description" validate:"nullable,max=5000"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Category      string   `json:"category" validate:"nullable,max=100"`
	Images        []string `json:"images"`
	StockQuantity int      `json:"stock_quantity" validate:"nullable,integer,gte=0"`
	IsAvailable   *bool    `json:"is_available"`
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	Category      *string   `json:"category"`
	Images        *[]string `json:"images"`
	StockQuantity *int      `json:"stock_quantity"`
	IsAvailable   *bool     `json:"is_available"`
}

// CatalogService manages the product catalogue.
type CatalogService struct {
	products *repositories.ProductRepository
}

func NewCatalogService(products *repositories.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns products for the storefront or the admin table.
func (s *CatalogService) List(f repositories.ProductFilter) ([]models.Product, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	products, err := s.products.List(f)
	if err != nil {
		return nil, apperr.Wrap(err, "catalog: list products")
	}
	return products, nil
}

// Get returns one product by id.
func (s *CatalogService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFoundf("Product not found")
		}
		return models.Product{}, apperr.Wrap(err, "catalog: fetch product")
	}
	return product, nil
}

// Create adds a product to the catalogue.
func (s *CatalogService) Create(in ProductInput) (models.Product, error) {
	if in.Price <= 0 {
		return models.Product{}, apperr.Validationf("The price must be greater than 0.")
	}
	if in.StockQuantity < 0 {
		return models.Product{}, apperr.Validationf("The stock_quantity must be greater than or equal to 0.")
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	product := models.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		Category:      strings.TrimSpace(in.Category),
		Images:        models.ImageList(in.Images),
		StockQuantity: in.StockQuantity,
		IsAvailable:   available,
	}
	if product.Images == nil {
		product.Images = models.ImageList{}
	}

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, apperr.Wrap(err, "catalog: create product")
	}

	s.invalidateCategories()
	return product, nil
}

// Update applies a partial update. Absent fields keep their stored values,
// so an empty patch is a no-op returning the current record.
func (s *CatalogService) Update(id uint, patch ProductPatch) (models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	if patch.Price != nil && *patch.Price <= 0 {
		return models.Product{}, apperr.Validationf("The price must be greater than 0.")
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		return models.Product{}, apperr.Validationf("The stock_quantity must be greater than or equal to 0.")
	}

	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Images != nil {
		product.Images = models.ImageList(*patch.Images)
	}
	if patch.StockQuantity != nil {
		product.StockQuantity = *patch.StockQuantity
	}
	if patch.IsAvailable != nil {
		product.IsAvailable = *patch.IsAvailable
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, apperr.Wrap(err, "catalog: update product")
	}

	s.invalidateCategories()
	return product, nil
}

// Delete removes a product from the catalogue. Past order items keep their
// snapshots, so history is unaffected.
func (s *CatalogService) Delete(id uint) error {
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("Product not found")
		}
		return apperr.Wrap(err, "catalog: delete product")
	}
	s.invalidateCategories()
	return nil
}

// Categories returns the distinct category names, served from Redis when
// available and recomputed on miss.
func (s *CatalogService) Categories() ([]string, error) {
	var cached []string
	if cache.Get(categoriesCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.products.Categories()
	if err != nil {
		return nil, apperr.Wrap(err, "catalog: list categories")
	}
	if categories == nil {
		categories = []string{}
	}

	cache.Set(categoriesCacheKey, categories, categoriesCacheTTL)
	return categories, nil
}

func (s *CatalogService) invalidateCategories() {
	cache.Del(categoriesCacheKey)
}
