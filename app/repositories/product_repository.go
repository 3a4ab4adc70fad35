package repositories

import (
	"strings"

	"github.com/skbags/atelier/app/models"
	"gorm.io/gorm"
)

// ProductFilter narrows a catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns products matching the filter, newest first. Filters apply
// before pagination so skip/limit page over the filtered set.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})

	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			like, like, like)
	}

	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var products []models.Product
	err := q.Order("id desc").Find(&products).Error
	return products, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	return product, err
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product. Returns gorm.ErrRecordNotFound when id is unknown.
func (r *ProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock atomically reduces stock for one product, but only when
// enough stock remains. Returns false when the guard fails, which callers
// treat as insufficient stock.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uint, qty int) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Categories returns the distinct non-empty category names, sorted.
func (r *ProductRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}

// CountLowStock returns how many products have stock below the threshold.
func (r *ProductRepository) CountLowStock(threshold int) (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).
		Where("stock_quantity < ?", threshold).
		Count(&n).Error
	return n, err
}
