package usecase

// Published to the order events exchange after a successful create.
type OrderPlacedMsg struct {
	OrderID       string `json:"orderId"`
	UserID        string `json:"userId"`
	AmountPaise   int64  `json:"amountPaise"`
	PaymentMethod string `json:"paymentMethod"`
	ItemCount     int    `json:"itemCount"`
}

// Sent by the fulfillment system on Kafka when an order is handed to a
// courier or cancelled.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	Status  string `json:"status"` // "DELIVERED" or "CANCELLED"
}
