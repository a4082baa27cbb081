package orderbook

import "errors"

// Error kinds surfaced by the core, per the command reference. The
// boundary adapter maps these to {error: text} replies; none are
// swallowed internally.
var (
	// ErrNotFound is returned by CancelOrder/ModifyOrder when the id is
	// not resident in the book.
	ErrNotFound = errors.New("order not found")

	// ErrDuplicateID is returned by AddOrder when the id is already
	// resident in the book.
	ErrDuplicateID = errors.New("order id already exists")

	// ErrInvalidQuantity is returned by AddOrder when quantity is zero.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrIllegalTransition is returned when canceling a filled order, or
	// modifying a filled or canceled order.
	ErrIllegalTransition = errors.New("illegal order state transition")

	// ErrShrinkBelowFilled is returned by ModifyOrder when the new total
	// quantity is less than the quantity already filled.
	ErrShrinkBelowFilled = errors.New("new total quantity is below filled quantity")

	// ErrOverfill signals an internal invariant violation: a fill was
	// requested for more than an order's remaining quantity. Unreachable
	// from well-formed engine use.
	ErrOverfill = errors.New("fill exceeds remaining quantity")
)
