package orderbook

import "fmt"

// PriceLevelView is one aggregated price level as returned by GetBids
// and GetAsks: a price and the total remaining quantity resting there.
type PriceLevelView struct {
	Price    int32
	Quantity uint32
}

// Book is a single-symbol limit order book: two price-ordered sides
// plus an id index, maintaining price-time priority across add,
// cancel, and modify. A Book is not safe for concurrent use; callers
// must serialize access (see the server package's dispatcher).
type Book struct {
	bids   *bookSide
	asks   *bookSide
	orders map[uint64]*Order
	trades []Trade

	sequence uint64
	tradeSeq uint64
	logger   Logger
}

// NewBook constructs an empty book. A nil logger defaults to NullLogger.
func NewBook(logger Logger) *Book {
	if logger == nil {
		logger = NullLogger{}
	}
	return &Book{
		bids:   newBookSide(true),
		asks:   newBookSide(false),
		orders: make(map[uint64]*Order),
		logger: logger,
	}
}

func (b *Book) sideFor(side Side) *bookSide {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

func (b *Book) oppositeSide(side Side) *bookSide {
	if side == Buy {
		return b.asks
	}
	return b.bids
}

// AddOrder admits a new order, matches it against the opposite side,
// and rests any GTC residual at the tail of its price level.
func (b *Book) AddOrder(id uint64, typ OrderType, side Side, price int32, quantity uint32) (*Order, error) {
	if _, exists := b.orders[id]; exists {
		return nil, ErrDuplicateID
	}
	if quantity == 0 {
		return nil, ErrInvalidQuantity
	}

	b.sequence++
	o := newOrder(id, typ, side, price, quantity, b.sequence)
	b.orders[id] = o
	b.logger.Log(fmt.Sprintf("order %d: admitted %s %s %d@%d", id, typ, side, quantity, price))

	(&matchEngine{book: b}).run(o, b.oppositeSide(side))
	b.settleAfterMatch(o)

	return o, nil
}

// CancelOrder cancels a resident order by id.
func (b *Book) CancelOrder(id uint64) error {
	o, ok := b.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.status == Filled {
		return ErrIllegalTransition
	}

	b.detachFromSide(o)
	_ = o.cancel()
	delete(b.orders, id)
	b.logger.Log(fmt.Sprintf("order %d: canceled", id))
	return nil
}

// ModifyOrder changes price and/or total quantity of a resident order.
// The order loses time priority and is re-matched against the opposite
// side as a fresh aggressive order. new_total is validated against the
// already-filled quantity before the order is detached from its level,
// so a failed modify never leaves the book partially mutated.
func (b *Book) ModifyOrder(id uint64, newPrice int32, newTotalQuantity uint32) error {
	o, ok := b.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.status == Filled || o.status == Canceled {
		return ErrIllegalTransition
	}
	if newTotalQuantity < o.Filled() {
		return ErrShrinkBelowFilled
	}

	b.detachFromSide(o)
	_ = o.modify(newPrice, newTotalQuantity)
	b.logger.Log(fmt.Sprintf("order %d: modified to price=%d total=%d", id, newPrice, newTotalQuantity))

	if o.status == Filled {
		delete(b.orders, id)
		b.logger.Log(fmt.Sprintf("order %d: fully filled after modification", id))
		return nil
	}

	(&matchEngine{book: b}).run(o, b.oppositeSide(o.side))
	b.settleAfterMatch(o)
	return nil
}

// settleAfterMatch applies the common post-match bookkeeping shared by
// AddOrder and ModifyOrder: a terminal order leaves the id index; a
// still-open GTC order rests at the tail of its (possibly new) price
// level. IOC and FOK orders never reach this function in a non-terminal
// state — the engine guarantees it.
func (b *Book) settleAfterMatch(o *Order) {
	switch o.status {
	case Filled, Canceled:
		delete(b.orders, o.id)
	default:
		if o.typ == GTC {
			b.sideFor(o.side).getOrCreate(o.price).pushBack(o)
		}
	}
}

// detachFromSide removes o from its current price level, if resident,
// dropping the level from its side once drained. It is a no-op for an
// order that is not currently resting on a level.
func (b *Book) detachFromSide(o *Order) {
	if !o.resident() {
		return
	}
	level := o.onLevel
	level.detach(o)
	b.sideFor(o.side).removeIfEmpty(level)
}

// removeFromIndex erases a fully-filled resting order from the id
// index. Called only by the matching engine once an order's remaining
// quantity has reached zero.
func (b *Book) removeFromIndex(id uint64) {
	delete(b.orders, id)
}

// cancelAggressor is the matching engine's cancel callback: it performs
// the same cleanup as CancelOrder, but tolerates an id no longer (or
// not yet, in the side-residency sense) present — for an IOC order
// that cannot cross, both the in-loop price-rejection path and the
// post-loop IOC residual path call this for the same order, so it must
// be idempotent.
func (b *Book) cancelAggressor(o *Order) {
	if _, ok := b.orders[o.id]; !ok {
		return
	}
	b.detachFromSide(o)
	_ = o.cancel()
	delete(b.orders, o.id)
	b.logger.Log(fmt.Sprintf("order %d: canceled by matching engine", o.id))
}

// recordTrade appends one execution to the trade history, pairing the
// bid-side and ask-side descriptors. Price always equals the resting
// order's price — price improvement is given to the aggressor.
func (b *Book) recordTrade(aggressive, resting *Order, price int32, quantity uint32) {
	b.tradeSeq++
	bidSide := TradeSide{Price: price, Quantity: quantity}
	askSide := TradeSide{Price: price, Quantity: quantity}
	if aggressive.side == Buy {
		bidSide.OrderID = aggressive.id
		askSide.OrderID = resting.id
	} else {
		bidSide.OrderID = resting.id
		askSide.OrderID = aggressive.id
	}

	trade := Trade{Bid: bidSide, Ask: askSide, Sequence: b.tradeSeq}
	b.trades = append(b.trades, trade)
	b.logger.Log(fmt.Sprintf("trade %d: bid=%d ask=%d price=%d qty=%d", trade.Sequence, bidSide.OrderID, askSide.OrderID, price, quantity))
}

// GetBids returns aggregated bid levels, best price (highest) first.
func (b *Book) GetBids() []PriceLevelView { return aggregateSide(b.bids) }

// GetAsks returns aggregated ask levels, best price (lowest) first.
func (b *Book) GetAsks() []PriceLevelView { return aggregateSide(b.asks) }

func aggregateSide(s *bookSide) []PriceLevelView {
	out := make([]PriceLevelView, 0, s.levels.Len())
	s.forEachBestFirst(func(lvl *priceLevel) bool {
		out = append(out, PriceLevelView{Price: lvl.price, Quantity: lvl.aggregateQuantity()})
		return true
	})
	return out
}

// GetTradeHistory returns a copy of the trade history in execution
// order. It is a pure read: the returned slice is not aliased to the
// book's internal history.
func (b *Book) GetTradeHistory() []Trade {
	out := make([]Trade, len(b.trades))
	copy(out, b.trades)
	return out
}

// Order looks up a resident order by id, for callers (tests, the
// boundary adapter) that need to inspect order state directly.
func (b *Book) Order(id uint64) (*Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}
