package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/micromarket/pkg/logger"
	"github.com/shashiranjanraj/micromarket/pkg/mail"
	"github.com/shashiranjanraj/micromarket/pkg/queue"
)

// OrderConfirmation emails a receipt after checkout. It is dispatched after
// the checkout transaction commits so a slow SMTP server never holds a
// database lock.
type OrderConfirmation struct {
	OrderID uint    `json:"orderId"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Total   float64 `json:"total"`
}

func (j *OrderConfirmation) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order #%d has been placed.</p><p>Total: %.2f</p>",
		j.Name, j.OrderID, j.Total,
	)

	err := mail.To(j.Email).
		Subject(fmt.Sprintf("Order #%d confirmed", j.OrderID)).
		Body(body).
		Send()
	if err != nil {
		return fmt.Errorf("send order confirmation for order %d: %w", j.OrderID, err)
	}

	logger.Info("order confirmation sent", "order_id", j.OrderID)
	return nil
}

// RegisterAll makes every job type known to the queue. Call once at boot.
func RegisterAll() {
	queue.Register(fmt.Sprintf("%T", &OrderConfirmation{}), func() queue.Job {
		return &OrderConfirmation{}
	})
}
