package repositories

import (
	"github.com/skbags/atelier/app/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB exposes the underlying handle so services can open transactions
// spanning orders and stock updates.
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

// Create persists an order together with its items inside tx.
func (r *OrderRepository) Create(tx *gorm.DB, order *models.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(order).Error
}

// FindByID loads an order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	return order, err
}

// List returns orders newest first, optionally filtered by status,
// with items preloaded.
func (r *OrderRepository) List(status string, skip, limit int) ([]models.Order, error) {
	q := r.db.Model(&models.Order{}).Preload("Items")

	if status != "" {
		q = q.Where("status = ?", status)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var orders []models.Order
	err := q.Order("id desc").Find(&orders).Error
	return orders, err
}

// UpdateStatus sets the status of one order. Returns gorm.ErrRecordNotFound
// when id is unknown.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Count(&n).Error
	return n, err
}

// CountByStatus returns the number of orders in one status.
func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// RevenueForStatuses sums total_amount over orders in the given statuses.
func (r *OrderRepository) RevenueForStatuses(statuses []string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
