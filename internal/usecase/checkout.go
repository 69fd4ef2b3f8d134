package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/freshcart/freshcart-api/internal/cart"
	domain "github.com/freshcart/freshcart-api/internal/entity"
)

const (
	MethodUPI = "upi"
	MethodCOD = "cod"
)

type CheckoutInput struct {
	UserID        string
	PaymentMethod string // MethodUPI or MethodCOD
	PaymentRef    string // gateway reference (e.g. UPI id) for online payment
}

// Checkout drives the full purchase flow: snapshot the cart, obtain a
// payment receipt, create the order, and only then clear the cart. A
// failure anywhere leaves the cart exactly as the user left it.
type Checkout struct {
	carts   *cart.Registry
	gateway PaymentGateway
	create  *CreateOrder
}

func NewCheckout(carts *cart.Registry, gateway PaymentGateway, create *CreateOrder) *Checkout {
	return &Checkout{carts: carts, gateway: gateway, create: create}
}

func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	if in.UserID == "" {
		return nil, ErrAuthRequired
	}

	store := uc.carts.For(in.UserID)
	snapshot := store.Snapshot()
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	var paymentID string
	switch in.PaymentMethod {
	case MethodCOD:
		// Cash on delivery needs no gateway round trip; the receipt is
		// minted locally and the order starts out processing like any other.
		paymentID = "COD-" + uuid.NewString()
	case MethodUPI:
		id, err := uc.gateway.Charge(ctx, in.UserID, domain.Total(snapshot), in.PaymentRef)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		paymentID = id
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrPaymentDeclined, in.PaymentMethod)
	}

	out, err := uc.create.Execute(ctx, CreateOrderInput{
		UserID:        in.UserID,
		PaymentID:     paymentID,
		PaymentMethod: in.PaymentMethod,
		Items:         snapshot,
	})
	if err != nil {
		return nil, err
	}

	// Clear strictly after the create is confirmed, and on both payment
	// paths: a failed persist must never cost the user their cart.
	store.Clear()
	return out.Order, nil
}
