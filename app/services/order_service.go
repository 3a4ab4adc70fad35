package services

import (
	"errors"
	"strings"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/skbags/atelier/pkg/event"
	"github.com/skbags/atelier/pkg/metrics"
	"gorm.io/gorm"
)

// EventOrderPlaced fires after an order commits, with the *models.Order as
// payload. Listeners feed the admin websocket and the confirmation email.
const EventOrderPlaced = "order.placed"

// OrderItemInput is one requested line in a checkout.
type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// OrderInput is the guest-checkout payload.
type OrderInput struct {
	CustomerName    string           `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail   string           `json:"customer_email" validate:"required,email"`
	CustomerPhone   string           `json:"customer_phone" validate:"nullable,max=50"`
	ShippingAddress string           `json:"shipping_address" validate:"required,min=5"`
	Notes           string           `json:"notes" validate:"nullable,max=2000"`
	Items           []OrderItemInput `json:"items" validate:"required"`
}

// TransitionPolicy decides whether an order may move between two statuses.
// Both arguments are always valid status values.
type TransitionPolicy interface {
	Allow(from, to string) error
}

// permissivePolicy allows any transition between valid statuses, matching
// how the back office actually works: staff fix mislabelled orders by
// moving them backwards.
type permissivePolicy struct{}

func (permissivePolicy) Allow(from, to string) error { return nil }

// OrderService places orders and manages their lifecycle.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	policy   TransitionPolicy
}

func NewOrderService(orders *repositories.OrderRepository, products *repositories.ProductRepository) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		policy:   permissivePolicy{},
	}
}

// SetTransitionPolicy replaces the status transition policy.
func (s *OrderService) SetTransitionPolicy(p TransitionPolicy) {
	if p != nil {
		s.policy = p
	}
}

// Place creates an order from the checkout payload. The whole placement is
// one transaction: every line either reserves its stock or the order rolls
// back with nothing persisted. Stock is reserved with a conditional
// decrement, so two concurrent checkouts can never oversell a product.
func (s *OrderService) Place(in OrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, apperr.Validationf("Order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return models.Order{}, apperr.Validationf("Item quantity must be greater than 0")
		}
	}

	order := models.Order{
		CustomerInfo: models.CustomerInfo{
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		},
		Status: models.OrderPending,
		Notes:  in.Notes,
	}

	err := s.orders.DB().Transaction(func(tx *gorm.DB) error {
		var total float64

		for _, line := range in.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("Product with id %d not found", line.ProductID)
				}
				return apperr.Wrap(err, "orders: fetch product")
			}
			if !product.IsAvailable {
				return apperr.Validationf("Product %s is not available", product.Name)
			}

			ok, err := s.products.DecrementStock(tx, product.ID, line.Quantity)
			if err != nil {
				return apperr.Wrap(err, "orders: reserve stock")
			}
			if !ok {
				metrics.StockRejections.Inc()
				return apperr.Stockf("Insufficient stock for product %s. Available: %d",
					product.Name, product.StockQuantity)
			}

			lineTotal := product.Price * float64(line.Quantity)
			total += lineTotal

			order.Items = append(order.Items, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     line.Quantity,
				PricePerUnit: product.Price,
				TotalPrice:   lineTotal,
			})
		}

		order.TotalAmount = total
		if err := s.orders.Create(tx, &order); err != nil {
			return apperr.Wrap(err, "orders: create order")
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderRevenue.Add(order.TotalAmount)
	event.FireAsync(EventOrderPlaced, &order)

	return order, nil
}

// Get returns one order with its items.
func (s *OrderService) Get(id uint) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFoundf("Order not found")
		}
		return models.Order{}, apperr.Wrap(err, "orders: fetch order")
	}
	return order, nil
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderService) List(status string, skip, limit int) ([]models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, apperr.Validationf("Invalid status %q", status)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	orders, err := s.orders.List(status, skip, limit)
	if err != nil {
		return nil, apperr.Wrap(err, "orders: list orders")
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status, subject to the transition
// policy. Stock is not restored on cancellation; restocking is a manual
// product edit.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, apperr.Validationf(
			"Invalid status. Must be one of: %s", strings.Join(models.OrderStatuses, ", "))
	}

	order, err := s.Get(id)
	if err != nil {
		return models.Order{}, err
	}

	if err := s.policy.Allow(order.Status, status); err != nil {
		return models.Order{}, apperr.Conflictf(
			"Cannot move order from %s to %s", order.Status, status)
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		return models.Order{}, apperr.Wrap(err, "orders: update status")
	}

	order.Status = status
	return order, nil
}
