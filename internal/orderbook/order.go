package orderbook

import "container/list"

// Order is a single resting or aggressive order. The zero value is not
// meaningful; construct via newOrder.
//
// An Order carries two non-owning back-references (onLevel, elem) used
// solely to make detaching it from its price level O(1); they are set by
// priceLevel.pushBack and cleared by priceLevel.detach or
// priceLevel.popFront. They are never used to
// reach into Book state from Order's own methods.
type Order struct {
	id        uint64
	typ       OrderType
	side      Side
	price     int32
	initial   uint32
	remaining uint32
	sequence  uint64
	status    OrderStatus

	onLevel *priceLevel
	elem    *list.Element
}

func newOrder(id uint64, typ OrderType, side Side, price int32, quantity uint32, sequence uint64) *Order {
	return &Order{
		id:        id,
		typ:       typ,
		side:      side,
		price:     price,
		initial:   quantity,
		remaining: quantity,
		sequence:  sequence,
		status:    Open,
	}
}

func (o *Order) ID() uint64            { return o.id }
func (o *Order) Type() OrderType       { return o.typ }
func (o *Order) Side() Side            { return o.side }
func (o *Order) Price() int32          { return o.price }
func (o *Order) Initial() uint32       { return o.initial }
func (o *Order) Remaining() uint32     { return o.remaining }
func (o *Order) Filled() uint32        { return o.initial - o.remaining }
func (o *Order) Status() OrderStatus   { return o.status }
func (o *Order) Sequence() uint64      { return o.sequence }
func (o *Order) resident() bool        { return o.onLevel != nil }

// cancel transitions the order to canceled. It fails with
// ErrIllegalTransition if the order is already filled.
func (o *Order) cancel() error {
	if o.status == Filled {
		return ErrIllegalTransition
	}
	o.status = Canceled
	return nil
}

// fill reduces remaining by quantity, deriving the resulting status. It
// fails with ErrOverfill if quantity exceeds remaining.
func (o *Order) fill(quantity uint32) error {
	if quantity > o.remaining {
		return ErrOverfill
	}
	o.remaining -= quantity
	if o.remaining == 0 {
		o.status = Filled
	} else {
		o.status = PartiallyFilled
	}
	return nil
}

// modify applies a new price and total quantity, recomputing remaining
// and status. It fails with ErrIllegalTransition if the order is
// terminal, or ErrShrinkBelowFilled if newTotal is less than the
// quantity already filled. Callers must validate newTotal against the
// filled quantity before detaching the order from its price level, so
// that a failed modify never leaves the book in a half-mutated state.
func (o *Order) modify(newPrice int32, newTotal uint32) error {
	if o.status == Filled || o.status == Canceled {
		return ErrIllegalTransition
	}
	filled := o.Filled()
	if newTotal < filled {
		return ErrShrinkBelowFilled
	}

	o.price = newPrice
	o.initial = newTotal
	o.remaining = newTotal - filled

	switch {
	case o.remaining == 0:
		o.status = Filled
	case filled > 0:
		o.status = PartiallyFilled
	default:
		o.status = Open
	}
	return nil
}
