package orderbook

import "github.com/tidwall/btree"

// bookSide is one side of the book: an ordered map from price to price
// level. Iteration in book order always yields the best price first —
// descending for bids, ascending for asks — which is exactly the
// ordering invariant I4 requires. Backed by a B-tree rather than a
// balanced binary tree or a sorted slice, since price levels are
// inserted and removed far more often than the book is fully scanned.
type bookSide struct {
	levels *btree.Map[int32, *priceLevel]
	isBid  bool
}

func newBookSide(isBid bool) *bookSide {
	return &bookSide{
		levels: btree.NewMap[int32, *priceLevel](32),
		isBid:  isBid,
	}
}

func (s *bookSide) empty() bool {
	return s.levels.Len() == 0
}

// best returns the level that should be matched against first, or nil
// if the side is empty.
func (s *bookSide) best() *priceLevel {
	var lvl *priceLevel
	var ok bool
	if s.isBid {
		_, lvl, ok = s.levels.Max()
	} else {
		_, lvl, ok = s.levels.Min()
	}
	if !ok {
		return nil
	}
	return lvl
}

func (s *bookSide) getOrCreate(price int32) *priceLevel {
	if lvl, ok := s.levels.Get(price); ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	s.levels.Set(price, lvl)
	return lvl
}

// removeIfEmpty drops lvl from the index once its queue has drained.
// Empty levels must never remain indexed (invariant I2).
func (s *bookSide) removeIfEmpty(lvl *priceLevel) {
	if lvl.empty() {
		s.levels.Delete(lvl.price)
	}
}

// acceptable reports whether an opposite-side level at levelPrice still
// crosses for an aggressor on aggressorSide at aggressorPrice.
func acceptable(aggressorSide Side, aggressorPrice, levelPrice int32) bool {
	if aggressorSide == Buy {
		return aggressorPrice >= levelPrice
	}
	return aggressorPrice <= levelPrice
}

// forEachBestFirst walks levels in book order (best price first),
// stopping early if fn returns false. It never mutates the side.
func (s *bookSide) forEachBestFirst(fn func(*priceLevel) bool) {
	if s.isBid {
		s.levels.Reverse(func(_ int32, lvl *priceLevel) bool { return fn(lvl) })
	} else {
		s.levels.Scan(func(_ int32, lvl *priceLevel) bool { return fn(lvl) })
	}
}
