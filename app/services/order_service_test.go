package services_test

import (
	"testing"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (*services.OrderService, *gorm.DB) {
	db := newTestDB(t)
	orders := repositories.NewOrderRepository(db)
	products := repositories.NewProductRepository(db)
	return services.NewOrderService(orders, products), db
}

func checkout(productID uint, qty int) services.OrderInput {
	return services.OrderInput{
		CustomerName:    "Maya Lin",
		CustomerEmail:   "maya@example.com",
		ShippingAddress: "12 Harbour Lane, Wellington",
		Items:           []services.OrderItemInput{{ProductID: productID, Quantity: qty}},
	}
}

func TestPlaceOrderSnapshotsPriceAndDecrementsStock(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 2)

	order, err := svc.Place(checkout(tote.ID, 2))
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 40.00, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Classic Canvas Tote", order.Items[0].ProductName)
	assert.Equal(t, 20.00, order.Items[0].PricePerUnit)
	assert.Equal(t, 40.00, order.Items[0].TotalPrice)

	var stored models.Product
	require.NoError(t, db.First(&stored, tote.ID).Error)
	assert.Equal(t, 0, stored.StockQuantity)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 2)

	_, err := svc.Place(checkout(tote.ID, 2))
	require.NoError(t, err)

	_, err = svc.Place(checkout(tote.ID, 1))
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	// The failed order must leave nothing behind.
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 1, orderCount)
}

func TestPlaceOrderConcurrentCannotOversell(t *testing.T) {
	db := newFileTestDB(t)
	orders := repositories.NewOrderRepository(db)
	products := repositories.NewProductRepository(db)
	svc := services.NewOrderService(orders, products)

	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 3)

	// Two buyers race for the last units; stock covers only one of them.
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.Place(checkout(tote.ID, 2))
			errs <- err
		}()
	}

	var placed, rejected int
	for i := 0; i < 2; i++ {
		err := <-errs
		if err == nil {
			placed++
			continue
		}
		rejected++
		assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))
	}
	assert.Equal(t, 1, placed)
	assert.Equal(t, 1, rejected)

	var stored models.Product
	require.NoError(t, db.First(&stored, tote.ID).Error)
	assert.Equal(t, 1, stored.StockQuantity)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 1, orderCount)
}

func TestPlaceOrderPriceSnapshotSurvivesEdit(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 5)

	order, err := svc.Place(checkout(tote.ID, 1))
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", tote.ID).Update("price", 99.0).Error)

	reloaded, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.00, reloaded.Items[0].PricePerUnit)
}

func TestPlaceOrderUnknownProductAbortsAll(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 5)

	in := checkout(tote.ID, 1)
	in.Items = append(in.Items, services.OrderItemInput{ProductID: 9999, Quantity: 1})

	_, err := svc.Place(in)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// First line's stock reservation must have rolled back.
	var stored models.Product
	require.NoError(t, db.First(&stored, tote.ID).Error)
	assert.Equal(t, 5, stored.StockQuantity)

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestPlaceOrderUnavailableProductRejected(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 5)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", tote.ID).Update("is_available", false).Error)

	_, err := svc.Place(checkout(tote.ID, 1))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestPlaceOrderRejectsEmptyAndZeroQuantity(t *testing.T) {
	svc, _ := newOrderService(t)

	in := checkout(1, 1)
	in.Items = nil
	_, err := svc.Place(in)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	in = checkout(1, 0)
	_, err = svc.Place(in)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 5)

	order, err := svc.Place(checkout(tote.ID, 1))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, models.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, updated.Status)

	// The default policy allows moving backwards too.
	updated, err = svc.UpdateStatus(order.ID, models.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, updated.Status)

	_, err = svc.UpdateStatus(order.ID, "teleported")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(9999, models.OrderConfirmed)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

type forwardOnlyPolicy struct{}

func (forwardOnlyPolicy) Allow(from, to string) error {
	if from == models.OrderDelivered {
		return assert.AnError
	}
	return nil
}

func TestTransitionPolicyIsConsulted(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 5)
	svc.SetTransitionPolicy(forwardOnlyPolicy{})

	order, err := svc.Place(checkout(tote.ID, 1))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.OrderDelivered)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.OrderPending)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "Cannot move order from delivered to pending", apperr.PublicMessage(err))
}

func TestListOrdersByStatus(t *testing.T) {
	svc, db := newOrderService(t)
	tote := seedProduct(t, db, "Classic Canvas Tote", 20.00, 10)

	first, err := svc.Place(checkout(tote.ID, 1))
	require.NoError(t, err)
	_, err = svc.Place(checkout(tote.ID, 1))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(first.ID, models.OrderShipped)
	require.NoError(t, err)

	shipped, err := svc.List(models.OrderShipped, 0, 100)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, first.ID, shipped[0].ID)

	all, err := svc.List("", 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// Newest first, items preloaded.
	assert.NotEmpty(t, all[0].Items)

	_, err = svc.List("teleported", 0, 100)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
