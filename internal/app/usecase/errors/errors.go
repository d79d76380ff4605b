package usecase

import "errors"

var (
	// ErrInvalidQuantity rejects non-positive quantities on ledger operations.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrInsufficientStock is the per-item failure of a stock removal.
	ErrInsufficientStock = errors.New("not enough stock for removal")

	// ErrOutOfStock is the order-level aggregate availability failure.
	ErrOutOfStock = errors.New("one or more ordered products are out of stock")

	// ErrInvalidTransition rejects a lifecycle transition the state graph forbids.
	ErrInvalidTransition = errors.New("order state transition is not allowed")

	// ErrUnknownLineItem guards exhaustiveness of the order line variants.
	ErrUnknownLineItem = errors.New("order line references an unknown item variant")
)
