// Package logging provides the console logging sink used at the
// boundary. The core only ever depends on orderbook.Logger; this
// package is how a process wires a real sink into it.
package logging

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls the console sink's verbosity and encoding.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// DefaultConfig returns sensible defaults for a server process.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// ZapLogger adapts a zap.Logger to the core's narrow Logger capability.
type ZapLogger struct {
	zap *zap.Logger
}

// New builds a console sink writing to stdout.
func New(cfg Config) (*ZapLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	return &ZapLogger{zap: zap.New(core)}, nil
}

// Log emits one structured line. The core treats this as an opaque
// side channel; it never inspects or orders log lines for correctness.
func (l *ZapLogger) Log(line string) {
	l.zap.Info(line, zap.String("component", "orderbook"))
}

// Sync flushes buffered log entries; call it before process exit.
// Stdout that is a pipe or terminal cannot be fsynced; that error is
// not reported.
func (l *ZapLogger) Sync() error {
	err := l.zap.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
