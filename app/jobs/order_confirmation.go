// Package jobs holds the background jobs dispatched through the queue.
package jobs

import (
	"fmt"
	"strings"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/pkg/database"
	"github.com/skbags/atelier/pkg/logger"
	"github.com/skbags/atelier/pkg/mail"
	"github.com/skbags/atelier/pkg/queue"
)

// OrderConfirmationJob emails the customer after their order is placed.
// Only the order id crosses the queue; the job re-reads the order so a
// delayed worker still sends current data.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

// RegisterJobs makes all job types known to the queue. Call once at boot
// before workers start.
func RegisterJobs() {
	queue.Register("jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
}

func (j OrderConfirmationJob) Handle() error {
	orders := repositories.NewOrderRepository(database.DB)
	order, err := orders.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}

	msg := mail.To(order.CustomerEmail).
		Subject(fmt.Sprintf("Order #%d confirmed", order.ID)).
		Text(confirmationText(order))

	if err := msg.Send(); err != nil {
		return fmt.Errorf("order confirmation: send to %s: %w", order.CustomerEmail, err)
	}

	logger.Info("order confirmation sent", "order_id", order.ID, "email", order.CustomerEmail)
	return nil
}

func confirmationText(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Thank you for your order #%d. Here is what you ordered:\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %d x %s — %.2f\n", item.Quantity, item.ProductName, item.TotalPrice)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.TotalAmount)
	fmt.Fprintf(&b, "Shipping to: %s\n\n", order.ShippingAddress)
	b.WriteString("We will let you know when your order ships.\n")
	return b.String()
}
