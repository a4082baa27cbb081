package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderFillUpdatesRemainingAndStatus(t *testing.T) {
	o := newOrder(1, GTC, Buy, 100, 10, 1)

	require.NoError(t, o.fill(4))
	require.Equal(t, uint32(6), o.Remaining())
	require.Equal(t, uint32(4), o.Filled())
	require.Equal(t, PartiallyFilled, o.Status())

	require.NoError(t, o.fill(6))
	require.Equal(t, uint32(0), o.Remaining())
	require.Equal(t, Filled, o.Status())
}

func TestOrderFillRejectsOverfill(t *testing.T) {
	o := newOrder(1, GTC, Buy, 100, 5, 1)
	require.ErrorIs(t, o.fill(6), ErrOverfill)
	require.Equal(t, uint32(5), o.Remaining(), "a rejected fill must not mutate the order")
}

func TestOrderCancelFromOpenOrPartial(t *testing.T) {
	o := newOrder(1, GTC, Buy, 100, 5, 1)
	require.NoError(t, o.cancel())
	require.Equal(t, Canceled, o.Status())

	o2 := newOrder(2, GTC, Buy, 100, 5, 2)
	require.NoError(t, o2.fill(2))
	require.NoError(t, o2.cancel())
	require.Equal(t, Canceled, o2.Status())
}

func TestOrderCancelRejectsFilled(t *testing.T) {
	o := newOrder(1, GTC, Buy, 100, 5, 1)
	require.NoError(t, o.fill(5))
	require.ErrorIs(t, o.cancel(), ErrIllegalTransition)
	require.Equal(t, Filled, o.Status())
}

func TestOrderModifyRecomputesFields(t *testing.T) {
	o := newOrder(6, GTC, Buy, 100, 10, 1)
	require.NoError(t, o.fill(6))

	require.NoError(t, o.modify(105, 8))
	require.Equal(t, int32(105), o.Price())
	require.Equal(t, uint32(8), o.Initial())
	require.Equal(t, uint32(2), o.Remaining())
	require.Equal(t, PartiallyFilled, o.Status())
}

func TestOrderModifyRejectsShrinkBelowFilled(t *testing.T) {
	o := newOrder(6, GTC, Buy, 105, 8, 1)
	require.NoError(t, o.fill(6))

	err := o.modify(105, 5)
	require.ErrorIs(t, err, ErrShrinkBelowFilled)
	require.Equal(t, uint32(8), o.Initial(), "a failed modify must not mutate the order")
	require.Equal(t, int32(105), o.Price())
}

func TestOrderModifyRejectsTerminal(t *testing.T) {
	filled := newOrder(1, GTC, Buy, 100, 5, 1)
	require.NoError(t, filled.fill(5))
	require.ErrorIs(t, filled.modify(101, 6), ErrIllegalTransition)

	canceled := newOrder(2, GTC, Buy, 100, 5, 2)
	require.NoError(t, canceled.cancel())
	require.ErrorIs(t, canceled.modify(101, 6), ErrIllegalTransition)
}

func TestOrderModifyToZeroRemainingIsFilled(t *testing.T) {
	o := newOrder(1, GTC, Buy, 100, 10, 1)
	require.NoError(t, o.fill(4))
	require.NoError(t, o.modify(100, 4))
	require.Equal(t, uint32(0), o.Remaining())
	require.Equal(t, Filled, o.Status())
}
