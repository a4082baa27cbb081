// Package server implements the boundary adapter: a TCP command
// protocol matching the original implementation's wire format exactly,
// a WebSocket live feed of trades and book depth, and the dispatcher
// that serializes both onto a single *orderbook.Book.
package server

import (
	"fmt"
	"strconv"

	"github.com/cmll21/orderbook/internal/orderbook"
)

// inboundEnvelope is the union of the two request shapes the command
// protocol accepts: an order record, or {"command": "summary"}.
type inboundEnvelope struct {
	Command  string `json:"command,omitempty"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Side     string `json:"side,omitempty"`
	Price    int64  `json:"price,omitempty"`
	Quantity uint64 `json:"quantity,omitempty"`
}

// isSummary reports whether the envelope is the summary command rather
// than an order record.
func (e inboundEnvelope) isSummary() bool {
	return e.Command == "summary"
}

// orderReply is the reply to an order request.
type orderReply struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// levelView is one aggregated price level in a summary reply.
type levelView struct {
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

// summaryReply is the reply to the summary command.
type summaryReply struct {
	Bids []levelView `json:"bids"`
	Asks []levelView `json:"asks"`
}

func parseOrderType(value string) (orderbook.OrderType, error) {
	switch value {
	case "GTC":
		return orderbook.GTC, nil
	case "IOC":
		return orderbook.IOC, nil
	case "FOK":
		return orderbook.FOK, nil
	default:
		return 0, fmt.Errorf("unknown order type %q", value)
	}
}

func parseSide(value string) (orderbook.Side, error) {
	switch value {
	case "buy":
		return orderbook.Buy, nil
	case "sell":
		return orderbook.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", value)
	}
}

// dispatch applies one decoded request to book and returns the reply
// to serialize back over the wire. Callers must never call it from
// more than one goroutine at a time; the Dispatcher's worker goroutine
// is its only caller, and the TCP server reaches it through
// Dispatcher.Submit.
func dispatch(book *orderbook.Book, req inboundEnvelope) interface{} {
	if req.isSummary() {
		return summaryOf(book)
	}

	id, err := strconv.ParseUint(req.ID, 10, 64)
	if err != nil {
		return orderReply{Error: fmt.Sprintf("invalid id: %v", err)}
	}
	typ, err := parseOrderType(req.Type)
	if err != nil {
		return orderReply{Error: err.Error()}
	}
	side, err := parseSide(req.Side)
	if err != nil {
		return orderReply{Error: err.Error()}
	}

	price := int32(req.Price)
	quantity := uint32(req.Quantity)

	if _, err := book.AddOrder(id, typ, side, price, quantity); err != nil {
		return orderReply{Error: err.Error()}
	}
	return orderReply{Message: fmt.Sprintf("Order received: %d", id)}
}

func summaryOf(book *orderbook.Book) summaryReply {
	bids := book.GetBids()
	asks := book.GetAsks()

	reply := summaryReply{
		Bids: make([]levelView, len(bids)),
		Asks: make([]levelView, len(asks)),
	}
	for i, lvl := range bids {
		reply.Bids[i] = levelView{Price: lvl.Price, Quantity: lvl.Quantity}
	}
	for i, lvl := range asks {
		reply.Asks[i] = levelView{Price: lvl.Price, Quantity: lvl.Quantity}
	}
	return reply
}
