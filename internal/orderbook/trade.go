package orderbook

// TradeSide is one participant's side of a single execution.
type TradeSide struct {
	OrderID  uint64
	Price    int32
	Quantity uint32
}

// Trade is an immutable record of one execution, pairing the bid-side
// and ask-side descriptors. Both descriptors share Price and Quantity;
// Price always equals the resting order's price, since price
// improvement is given to the aggressor.
type Trade struct {
	Bid      TradeSide
	Ask      TradeSide
	Sequence uint64
}
