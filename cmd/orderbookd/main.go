// Command orderbookd runs the order book server: the TCP command
// protocol and the WebSocket live feed, sharing one book instance
// through a single serializing dispatcher.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmll21/orderbook/config"
	"github.com/cmll21/orderbook/internal/orderbook"
	"github.com/cmll21/orderbook/logging"
	"github.com/cmll21/orderbook/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	listenAddr := flag.String("listen", "", "TCP command protocol listen address (overrides config/env)")
	wsListenAddr := flag.String("ws-listen", "", "WebSocket live-feed listen address (overrides config/env)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config/env)")
	logFormat := flag.String("log-format", "", "log format: json or console (overrides config/env)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	cfg = cfg.ApplyEnvOverrides()
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *wsListenAddr != "" {
		cfg.WSListenAddr = *wsListenAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	book := orderbook.NewBook(logger)
	stream := server.NewStreamServer()
	dispatcher := server.NewDispatcher(book, stream)
	defer dispatcher.Stop()

	tcpServer, err := server.NewTCPServer(cfg.ListenAddr, dispatcher, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bind command protocol: %v\n", err)
		return 1
	}
	defer tcpServer.Close()

	errCh := make(chan error, 2)
	go func() {
		errCh <- tcpServer.Serve()
	}()
	go func() {
		errCh <- http.ListenAndServe(cfg.WSListenAddr, stream.Routes())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Log(fmt.Sprintf("orderbookd listening: tcp=%s ws=%s", cfg.ListenAddr, cfg.WSListenAddr))

	select {
	case <-sigCh:
		logger.Log("orderbookd shutting down")
		return 0
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
}
