package usecase

import "errors"

var (
	// ErrAuthRequired: the operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")
	// ErrEmptyCart: checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentDeclined: the gateway reported failure or cancellation;
	// the user must re-attempt checkout.
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrDuplicatePayment: a create for this receipt is already in flight.
	ErrDuplicatePayment = errors.New("payment already being processed")
	// ErrStorage: the storage collaborator failed; retryable.
	ErrStorage = errors.New("storage unavailable")
	// ErrEmptyDish: ingredient suggestion needs a dish name.
	ErrEmptyDish = errors.New("dish name required")
)
