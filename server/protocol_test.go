package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmll21/orderbook/internal/orderbook"
)

func TestDispatchOrderAccepted(t *testing.T) {
	book := orderbook.NewBook(nil)
	reply := dispatch(book, inboundEnvelope{ID: "1", Type: "GTC", Side: "buy", Price: 100, Quantity: 5})

	or, ok := reply.(orderReply)
	require.True(t, ok)
	require.Equal(t, "Order received: 1", or.Message)
	require.Empty(t, or.Error)
}

func TestDispatchOrderRejectsBadSide(t *testing.T) {
	book := orderbook.NewBook(nil)
	reply := dispatch(book, inboundEnvelope{ID: "1", Type: "GTC", Side: "up", Price: 100, Quantity: 5})

	or, ok := reply.(orderReply)
	require.True(t, ok)
	require.NotEmpty(t, or.Error)
}

func TestDispatchOrderRejectsCoreError(t *testing.T) {
	book := orderbook.NewBook(nil)
	reply := dispatch(book, inboundEnvelope{ID: "1", Type: "GTC", Side: "buy", Price: 100, Quantity: 0})

	or, ok := reply.(orderReply)
	require.True(t, ok)
	require.Equal(t, orderbook.ErrInvalidQuantity.Error(), or.Error)
}

func TestDispatchSummaryAggregatesBothSides(t *testing.T) {
	book := orderbook.NewBook(nil)
	_, err := book.AddOrder(1, orderbook.GTC, orderbook.Buy, 100, 5)
	require.NoError(t, err)
	_, err = book.AddOrder(2, orderbook.GTC, orderbook.Sell, 105, 3)
	require.NoError(t, err)

	reply := dispatch(book, inboundEnvelope{Command: "summary"})
	summary, ok := reply.(summaryReply)
	require.True(t, ok)
	require.Equal(t, []levelView{{Price: 100, Quantity: 5}}, summary.Bids)
	require.Equal(t, []levelView{{Price: 105, Quantity: 3}}, summary.Asks)
}

func TestDispatchSummaryOrdersLevelsBestFirst(t *testing.T) {
	book := orderbook.NewBook(nil)
	_, err := book.AddOrder(1, orderbook.GTC, orderbook.Buy, 100, 5)
	require.NoError(t, err)
	_, err = book.AddOrder(2, orderbook.GTC, orderbook.Buy, 102, 2)
	require.NoError(t, err)

	reply := dispatch(book, inboundEnvelope{Command: "summary"}).(summaryReply)
	require.Equal(t, int32(102), reply.Bids[0].Price, "bids must be descending, best price first")
}
