package orderbook

import "fmt"

// matchEngine runs one synchronous matching pass for an aggressive
// order against the opposite side. It is a transient procedure, not a
// long-lived object: a fresh matchEngine is built per call and thrown
// away once run returns.
type matchEngine struct {
	book *Book
}

// run implements the price-time priority algorithm: a FOK liquidity
// pre-check, the price-time match loop, and IOC residual cancellation.
// aggressive is either a newly admitted order or one just re-admitted
// by modify; opposite is the book side facing it.
func (m *matchEngine) run(aggressive *Order, opposite *bookSide) {
	if aggressive.typ == FOK && !m.hasSufficientLiquidity(aggressive, opposite) {
		m.book.logger.Log(fmt.Sprintf("order %d: insufficient liquidity for fill-or-kill", aggressive.id))
		m.book.cancelAggressor(aggressive)
		return
	}

	for !opposite.empty() && aggressive.remaining > 0 {
		level := opposite.best()
		if level == nil {
			break
		}
		if !acceptable(aggressive.side, aggressive.price, level.price) {
			if aggressive.typ == IOC || aggressive.typ == FOK {
				m.book.logger.Log(fmt.Sprintf("order %d: price not acceptable", aggressive.id))
				m.book.cancelAggressor(aggressive)
			}
			break
		}
		m.consumeLevel(aggressive, level, opposite)
	}

	if aggressive.typ == IOC && aggressive.remaining > 0 {
		_ = aggressive.cancel()
		m.book.logger.Log(fmt.Sprintf("order %d: immediate-or-cancel residual of %d canceled", aggressive.id, aggressive.remaining))
		m.book.cancelAggressor(aggressive)
	}
}

// consumeLevel matches the aggressive order against the level's
// resting orders in FIFO order until the level drains or the
// aggressive order is fully filled, then drops the level if it is now
// empty.
func (m *matchEngine) consumeLevel(aggressive *Order, level *priceLevel, opposite *bookSide) {
	for aggressive.remaining > 0 {
		resting := level.front()
		if resting == nil {
			break
		}

		traded := min32(aggressive.remaining, resting.remaining)
		price := resting.price

		_ = aggressive.fill(traded)
		_ = resting.fill(traded)

		m.book.recordTrade(aggressive, resting, price, traded)

		if resting.status == Filled {
			level.popFront()
			m.book.removeFromIndex(resting.id)
		}
	}
	if level.empty() {
		opposite.removeIfEmpty(level)
	}
}

// hasSufficientLiquidity walks the opposite side from the best price,
// summing resting quantity across acceptable levels only, stopping as
// soon as the total would satisfy the aggressor. It never mutates
// state.
func (m *matchEngine) hasSufficientLiquidity(aggressive *Order, opposite *bookSide) bool {
	var total uint32
	enough := false
	opposite.forEachBestFirst(func(level *priceLevel) bool {
		if !acceptable(aggressive.side, aggressive.price, level.price) {
			return false
		}
		for e := level.orders.Front(); e != nil; e = e.Next() {
			total += e.Value.(*Order).remaining
			if total >= aggressive.remaining {
				enough = true
				return false
			}
		}
		return true
	})
	return enough
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
