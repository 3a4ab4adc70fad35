package services

import (
	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/pkg/apperr"
)

// lowStockThreshold is the stock level under which a product counts as
// low stock on the dashboard.
const lowStockThreshold = 5

// revenueStatuses are the order statuses that count toward revenue.
// Pending and cancelled orders are excluded.
var revenueStatuses = []string{
	models.OrderConfirmed, models.OrderShipped, models.OrderDelivered,
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	LowStockCount int64   `json:"low_stock_products"`
}

// DashboardService aggregates store counters for the admin dashboard.
// Stats are computed live on every call; the numbers drive restocking
// decisions, so staleness is worse than a few count queries.
type DashboardService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
}

func NewDashboardService(products *repositories.ProductRepository, orders *repositories.OrderRepository) *DashboardService {
	return &DashboardService{products: products, orders: orders}
}

// Stats returns the current dashboard summary.
func (s *DashboardService) Stats() (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalProducts, err = s.products.Count(); err != nil {
		return stats, apperr.Wrap(err, "dashboard: count products")
	}
	if stats.TotalOrders, err = s.orders.Count(); err != nil {
		return stats, apperr.Wrap(err, "dashboard: count orders")
	}
	if stats.PendingOrders, err = s.orders.CountByStatus(models.OrderPending); err != nil {
		return stats, apperr.Wrap(err, "dashboard: count pending")
	}
	if stats.TotalRevenue, err = s.orders.RevenueForStatuses(revenueStatuses); err != nil {
		return stats, apperr.Wrap(err, "dashboard: sum revenue")
	}
	if stats.LowStockCount, err = s.products.CountLowStock(lowStockThreshold); err != nil {
		return stats, apperr.Wrap(err, "dashboard: count low stock")
	}

	return stats, nil
}
