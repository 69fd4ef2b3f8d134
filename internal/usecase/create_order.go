package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

type CreateOrderInput struct {
	UserID        string
	PaymentID     string // opaque receipt from the payment collaborator
	PaymentMethod string
	Items         []domain.LineItem // cart snapshot, already detached
}

type CreateOrderOutput struct {
	Order     *domain.Order
	Duplicate bool // the receipt had already produced an order
}

// CreateOrder turns a confirmed payment into a durable order record. The
// idempotency latch guarantees at most one persisted order per receipt:
// a replayed receipt returns the original order instead of a second row.
type CreateOrder struct {
	repo   OrderRepo
	idem   IdempotencyStore
	events OrderEvents
	now    func() time.Time
}

func NewCreateOrder(repo OrderRepo, idem IdempotencyStore, events OrderEvents) *CreateOrder {
	return &CreateOrder{repo: repo, idem: idem, events: events, now: time.Now}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	if in.UserID == "" {
		return CreateOrderOutput{}, ErrAuthRequired
	}
	if len(in.Items) == 0 {
		return CreateOrderOutput{}, ErrEmptyCart
	}

	// Fast path: this receipt already produced an order.
	if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.PaymentID); ok {
		prev, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return CreateOrderOutput{}, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return CreateOrderOutput{Order: prev, Duplicate: true}, nil
	}

	ok, err := uc.idem.TryLock(ctx, in.UserID, in.PaymentID)
	if err != nil {
		return CreateOrderOutput{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return CreateOrderOutput{}, ErrDuplicatePayment
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		PaymentID:     in.PaymentID,
		PaymentMethod: in.PaymentMethod,
		Items:         in.Items,
		AmountPaise:   domain.Total(in.Items),
		Status:        domain.StatusProcessing,
		CreatedAt:     uc.now().UTC(),
	}
	if err := order.Validate(); err != nil {
		return CreateOrderOutput{}, err
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		// Nothing was persisted, so the receipt must stay usable for a
		// retry; drop the latch before surfacing the failure.
		_ = uc.idem.Release(ctx, in.UserID, in.PaymentID)
		return CreateOrderOutput{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	_ = uc.idem.Remember(ctx, in.UserID, in.PaymentID, order.ID)

	if uc.events != nil {
		_ = uc.events.PublishPlaced(ctx, OrderPlacedMsg{
			OrderID:       order.ID,
			UserID:        order.UserID,
			AmountPaise:   order.AmountPaise,
			PaymentMethod: order.PaymentMethod,
			ItemCount:     len(order.Items),
		})
	}

	return CreateOrderOutput{Order: order}, nil
}
