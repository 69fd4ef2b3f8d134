package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/freshcart-api/internal/cart"
	domain "github.com/freshcart/freshcart-api/internal/entity"
)

type checkoutFixture struct {
	uc      *Checkout
	carts   *cart.Registry
	repo    *mockOrderRepo
	gateway *mockGateway
	events  *mockEvents
}

func newCheckoutFixture() *checkoutFixture {
	repo := newMockOrderRepo()
	events := &mockEvents{}
	gateway := &mockGateway{
		chargeFn: func(context.Context, string, int64, string) (string, error) {
			return "UPI-RECEIPT-1", nil
		},
	}
	carts := cart.NewRegistry()
	return &checkoutFixture{
		uc:      NewCheckout(carts, gateway, NewCreateOrder(repo, newMockIdemStore(), events)),
		carts:   carts,
		repo:    repo,
		gateway: gateway,
		events:  events,
	}
}

func (f *checkoutFixture) fillCart(userID string) {
	st := f.carts.For(userID)
	st.Add(domain.LineItem{ProductID: "v1", Name: "Tomatoes", UnitPricePaise: 4000})
	st.AdjustQuantity("v1", 1)
	st.Add(domain.LineItem{ProductID: "f1", Name: "Apples", UnitPricePaise: 5000})
}

func TestCheckoutUPIHappyPath(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart("alice")

	order, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: MethodUPI,
		PaymentRef:    "alice@upi",
	})
	require.NoError(t, err)
	assert.Equal(t, "UPI-RECEIPT-1", order.PaymentID)
	assert.Equal(t, int64(17650), order.AmountPaise)
	assert.Equal(t, domain.StatusProcessing, order.Status)

	assert.Zero(t, f.carts.For("alice").Len(), "cart cleared after confirmed create")
	assert.Equal(t, 1, f.gateway.charges)
	assert.Len(t, f.events.published, 1)
}

func TestCheckoutCODMintsLocalReceipt(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart("alice")

	order, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: MethodCOD,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.PaymentID, "COD-"))
	assert.Zero(t, f.gateway.charges, "cash on delivery never hits the gateway")
	assert.Zero(t, f.carts.For("alice").Len())
}

func TestCheckoutDeclinedLeavesCartIntact(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart("alice")
	f.gateway.chargeFn = func(context.Context, string, int64, string) (string, error) {
		return "", errors.New("insufficient funds")
	}

	_, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: MethodUPI,
	})
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Equal(t, 2, f.carts.For("alice").Len())
	assert.Zero(t, f.repo.createCalls)
}

func TestCheckoutPersistFailureLeavesCartIntact(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart("alice")
	f.repo.createErr = errors.New("deadlock")

	_, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: MethodCOD,
	})
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 2, f.carts.For("alice").Len(), "a failed persist must not cost the user their cart")
}

func TestCheckoutChargesSnapshotTotal(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart("alice")

	var charged int64
	f.gateway.chargeFn = func(_ context.Context, _ string, amountPaise int64, _ string) (string, error) {
		charged = amountPaise
		return "UPI-1", nil
	}

	_, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: MethodUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17650), charged)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: MethodUPI,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.gateway.charges)
}

func TestCheckoutUnknownMethod(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart("alice")
	_, err := f.uc.Execute(context.Background(), CheckoutInput{
		UserID:        "alice",
		PaymentMethod: "cheque",
	})
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Equal(t, 2, f.carts.For("alice").Len())
}

func TestCheckoutRequiresUser(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.uc.Execute(context.Background(), CheckoutInput{PaymentMethod: MethodUPI})
	assert.ErrorIs(t, err, ErrAuthRequired)
}
