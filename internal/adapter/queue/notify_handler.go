package queue

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/freshcart/freshcart-api/internal/logging"
	"github.com/freshcart/freshcart-api/internal/usecase"
)

var ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "freshcart_orders_placed_total",
	Help: "Orders acknowledged from the order.placed queue",
})

// NotifyHandler consumes order.placed events and triggers the customer
// confirmation. Delivery of the actual message (mail/push) is handed to
// the notification system; here the event is recorded and counted.
// Intended for queue.JSONHandler[usecase.OrderPlacedMsg].
type NotifyHandler struct{}

func NewNotifyHandler() *NotifyHandler { return &NotifyHandler{} }

func (h *NotifyHandler) HandlePlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	logging.FromCtx(ctx).Info("order placed",
		"order_id", msg.OrderID,
		"user_id", msg.UserID,
		"amount_paise", msg.AmountPaise,
		"payment_method", msg.PaymentMethod,
		"items", msg.ItemCount,
	)
	ordersPlaced.Inc()
	return nil
}
