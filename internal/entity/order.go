package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// RetentionWindow is the fixed lifetime of an order record. Past it the
// record is hard-deleted, regardless of status.
const RetentionWindow = 24 * time.Hour

var ErrInvalidAmount = errors.New("invalid amount")

// Order is immutable once created except for Status, which only moves
// forward: PROCESSING -> DELIVERED or PROCESSING -> CANCELLED.
type Order struct {
	ID            string
	UserID        string
	PaymentID     string
	PaymentMethod string
	Items         []LineItem // frozen copy of the cart snapshot
	AmountPaise   int64
	Status        Status
	CreatedAt     time.Time
}

func (o *Order) Validate() error {
	if o.AmountPaise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (o *Order) Expired(now time.Time) bool {
	return now.Sub(o.CreatedAt) >= RetentionWindow
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether s -> to is a legal forward move.
func (s Status) CanTransition(to Status) bool {
	return s == StatusProcessing && to.Terminal()
}
