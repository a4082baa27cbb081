package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"

	"github.com/cmll21/orderbook/internal/orderbook"
)

// TCPServer accepts newline-framed JSON command records, matching the
// original implementation's boost::asio async_read_until(..., "\n")
// framing: one JSON object per line in, one JSON object per line out.
type TCPServer struct {
	listener   net.Listener
	dispatcher *Dispatcher
	logger     orderbook.Logger
}

// NewTCPServer binds addr and returns a server ready to Serve.
func NewTCPServer(addr string, dispatcher *Dispatcher, logger orderbook.Logger) (*TCPServer, error) {
	if logger == nil {
		logger = orderbook.NullLogger{}
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &TCPServer{listener: ln, dispatcher: dispatcher, logger: logger}, nil
}

// Addr returns the server's bound address, useful when addr was ":0".
func (s *TCPServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed.
func (s *TCPServer) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// Close stops accepting new connections.
func (s *TCPServer) Close() error {
	return s.listener.Close()
}

func (s *TCPServer) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req inboundEnvelope
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeReply(writer, orderReply{Error: fmt.Sprintf("Error processing order: %v", err)})
			continue
		}

		reply := s.dispatcher.Submit(req)
		s.writeReply(writer, reply)
	}
}

func (s *TCPServer) writeReply(w *bufio.Writer, reply interface{}) {
	encoded, err := json.Marshal(reply)
	if err != nil {
		s.logger.Log(fmt.Sprintf("encode reply: %v", err))
		return
	}
	w.Write(encoded)
	w.WriteByte('\n')
	w.Flush()
}
