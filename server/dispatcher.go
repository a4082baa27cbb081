package server

import (
	"github.com/cmll21/orderbook/internal/orderbook"
)

// dispatchRequest carries one decoded command and the channel its
// reply is delivered on.
type dispatchRequest struct {
	req  inboundEnvelope
	resp chan interface{}
}

// Dispatcher owns the single *orderbook.Book instance and funnels
// every command — from any TCP connection, and in principle from any
// other boundary transport — through one goroutine, so the core never
// observes concurrent calls. It also republishes trades and book
// depth produced by order-mutating commands to the live feed.
type Dispatcher struct {
	book   *orderbook.Book
	stream *StreamServer
	reqCh  chan dispatchRequest
	stopCh chan struct{}
}

// NewDispatcher builds a dispatcher around book and starts its worker
// loop. stream may be nil, in which case trade/book broadcasts are
// skipped.
func NewDispatcher(book *orderbook.Book, stream *StreamServer) *Dispatcher {
	d := &Dispatcher{
		book:   book,
		stream: stream,
		reqCh:  make(chan dispatchRequest),
		stopCh: make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit enqueues one decoded request and blocks for its reply.
func (d *Dispatcher) Submit(req inboundEnvelope) interface{} {
	resp := make(chan interface{}, 1)
	d.reqCh <- dispatchRequest{req: req, resp: resp}
	return <-resp
}

// Stop terminates the worker loop. Pending Submit calls made after
// Stop will block forever; callers must stop accepting new
// connections first.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
}

func (d *Dispatcher) run() {
	for {
		select {
		case <-d.stopCh:
			return
		case call := <-d.reqCh:
			tradesBefore := len(d.book.GetTradeHistory())
			reply := dispatch(d.book, call.req)
			call.resp <- reply

			if or, ok := reply.(orderReply); ok && or.Error != "" {
				continue
			}
			if d.stream == nil {
				continue
			}
			d.stream.PublishBook(d.book.GetBids(), d.book.GetAsks())
			for _, trade := range d.book.GetTradeHistory()[tradesBefore:] {
				d.stream.PublishTrade(trade)
			}
		}
	}
}
