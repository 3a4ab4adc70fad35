package services_test

import (
	"testing"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)
	svc := services.NewDashboardService(products, orders)

	seedProduct(t, db, "Classic Canvas Tote", 20.00, 12)
	seedProduct(t, db, "Crossbody Satchel", 89.00, 3) // below the low-stock line

	mk := func(status string, amount float64) {
		require.NoError(t, db.Create(&models.Order{
			CustomerInfo: models.CustomerInfo{
				CustomerName:    "Maya Lin",
				CustomerEmail:   "maya@example.com",
				ShippingAddress: "12 Harbour Lane",
			},
			TotalAmount: amount,
			Status:      status,
		}).Error)
	}
	mk(models.OrderPending, 10)
	mk(models.OrderConfirmed, 20)
	mk(models.OrderShipped, 30)
	mk(models.OrderDelivered, 40)
	mk(models.OrderCancelled, 50)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 5, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	// Revenue counts confirmed, shipped, and delivered only.
	assert.Equal(t, 90.00, stats.TotalRevenue)
	assert.EqualValues(t, 1, stats.LowStockCount)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewDashboardService(
		repositories.NewProductRepository(db),
		repositories.NewOrderRepository(db),
	)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalRevenue)
}
