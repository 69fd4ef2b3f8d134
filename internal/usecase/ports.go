package usecase

import (
	"context"
	"time"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

// OrderRepo is the durable storage collaborator. Network-bound and
// fallible; callers wrap failures as ErrStorage.
type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// UpdateStatusIf applies a guarded transition; false means the order
	// was missing or not in fromStatus.
	UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error)
}

// IdempotencyStore backs the per-receipt create latch.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// StatusCache mirrors order status for cheap reads. Entries are scoped
// to the owning user so a cached status is never visible to anyone else.
type StatusCache interface {
	SetStatus(ctx context.Context, userID, orderID string, status domain.Status) error
	GetStatus(ctx context.Context, userID, orderID string) (domain.Status, bool, error)
}

// OrderEvents publishes lifecycle events; best-effort from the caller's
// point of view.
type OrderEvents interface {
	PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error
}

// PaymentGateway is the opaque payment collaborator: pass/fail plus a
// receipt id. Declined or cancelled charges come back as ErrPaymentDeclined.
type PaymentGateway interface {
	Charge(ctx context.Context, userID string, amountPaise int64, reference string) (paymentID string, err error)
}

// IngredientSource expands a free-text dish name into ingredient names.
type IngredientSource interface {
	Ingredients(ctx context.Context, dish string) ([]string, error)
}
