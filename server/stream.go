package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/cmll21/orderbook/internal/orderbook"
)

// outboundMessage envelopes every value pushed to a live-feed
// subscriber so a client can distinguish trade pushes from book
// depth pushes on one connection.
type outboundMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type tradeView struct {
	Sequence uint64 `json:"sequence"`
	BidOrder uint64 `json:"bidOrderId"`
	AskOrder uint64 `json:"askOrderId"`
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

type depthView struct {
	Bids []levelView `json:"bids"`
	Asks []levelView `json:"asks"`
}

// StreamServer pushes executed trades and book-depth snapshots to
// WebSocket subscribers. It never mutates the book; the dispatcher
// calls PublishTrade/PublishBook after each command it has already
// applied, so this server only ever observes state the core has
// already settled.
type StreamServer struct {
	tradeHub *hub[tradeView]
	bookHub  *hub[depthView]
	upgrader websocket.Upgrader
}

// NewStreamServer builds a stream server ready to accept subscribers.
func NewStreamServer() *StreamServer {
	return &StreamServer{
		tradeHub: newHub[tradeView](),
		bookHub:  newHub[depthView](),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Routes returns the HTTP handler serving the live-feed endpoints.
func (s *StreamServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/trades", s.handleTradeStream)
	mux.HandleFunc("/ws/book", s.handleBookStream)
	return mux
}

// PublishTrade broadcasts one executed trade to trade-stream
// subscribers.
func (s *StreamServer) PublishTrade(trade orderbook.Trade) {
	s.tradeHub.Broadcast(tradeView{
		Sequence: trade.Sequence,
		BidOrder: trade.Bid.OrderID,
		AskOrder: trade.Ask.OrderID,
		Price:    trade.Bid.Price,
		Quantity: trade.Bid.Quantity,
	})
}

// PublishBook broadcasts an aggregated book-depth snapshot to
// book-stream subscribers.
func (s *StreamServer) PublishBook(bids, asks []orderbook.PriceLevelView) {
	view := depthView{
		Bids: make([]levelView, len(bids)),
		Asks: make([]levelView, len(asks)),
	}
	for i, lvl := range bids {
		view.Bids[i] = levelView{Price: lvl.Price, Quantity: lvl.Quantity}
	}
	for i, lvl := range asks {
		view.Asks[i] = levelView{Price: lvl.Price, Quantity: lvl.Quantity}
	}
	s.bookHub.Broadcast(view)
}

func (s *StreamServer) handleTradeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := s.tradeHub.Subscribe(32)
	defer s.tradeHub.Unsubscribe(sub)

	for trade := range sub.ch {
		if err := conn.WriteJSON(outboundMessage{Type: "trade", Data: trade}); err != nil {
			return
		}
	}
}

func (s *StreamServer) handleBookStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := s.bookHub.Subscribe(32)
	defer s.bookHub.Unsubscribe(sub)

	for view := range sub.ch {
		if err := conn.WriteJSON(outboundMessage{Type: "book", Data: view}); err != nil {
			return
		}
	}
}
