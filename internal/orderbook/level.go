package orderbook

import "container/list"

// priceLevel is the FIFO queue of resting orders at one price on one
// side. The book never lets an empty level linger in a side's index.
type priceLevel struct {
	price  int32
	orders *list.List
}

func newPriceLevel(price int32) *priceLevel {
	return &priceLevel{price: price, orders: list.New()}
}

func (l *priceLevel) empty() bool {
	return l.orders.Len() == 0
}

// pushBack admits an order at the tail of the level, recording the list
// element on the order so later removal is O(1).
func (l *priceLevel) pushBack(o *Order) {
	o.elem = l.orders.PushBack(o)
	o.onLevel = l
}

func (l *priceLevel) front() *Order {
	if e := l.orders.Front(); e != nil {
		return e.Value.(*Order)
	}
	return nil
}

// popFront removes and returns the head order, if any.
func (l *priceLevel) popFront() *Order {
	e := l.orders.Front()
	if e == nil {
		return nil
	}
	o := e.Value.(*Order)
	l.orders.Remove(e)
	o.elem = nil
	o.onLevel = nil
	return o
}

// detach removes o from the level using its recorded element. o must
// belong to this level.
func (l *priceLevel) detach(o *Order) {
	l.orders.Remove(o.elem)
	o.elem = nil
	o.onLevel = nil
}

// aggregateQuantity sums remaining quantity across every order resting
// at this level, in FIFO order (order does not matter for the sum but
// iteration follows arrival sequence, per invariant P3).
func (l *priceLevel) aggregateQuantity() uint32 {
	var total uint32
	for e := l.orders.Front(); e != nil; e = e.Next() {
		total += e.Value.(*Order).remaining
	}
	return total
}
