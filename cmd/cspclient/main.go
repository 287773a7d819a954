package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/client"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/config"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/events"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/transport"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml or json config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(levelFromName(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-stopCh
		cancel()
	}()

	conn, err := dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	c := client.New(conn, logEvents(logger), cfg.Flush.Interval.Std(), logger)
	logger.Info("replication client started",
		zap.String("transport", cfg.Transport.Kind),
		zap.String("endpoint", cfg.Transport.Endpoint))
	return c.Run(ctx)
}

func dial(ctx context.Context, cfg *config.Config) (transport.Conn, error) {
	switch cfg.Transport.Kind {
	case "quic":
		return transport.DialQUIC(ctx, cfg.Transport.Endpoint, nil)
	default:
		return transport.DialWebSocket(ctx, cfg.Transport.Endpoint)
	}
}

// logEvents is the demo dispatcher: it logs every decoded event.
func logEvents(logger *log.Logger) client.Handler {
	return func(e events.TypedEvent) {
		switch event := e.(type) {
		case *events.AsyncCallCompletedEvent:
			logger.Info("operation completed",
				zap.String("operation", event.OperationName),
				zap.String("reference_id", event.ReferenceID),
				zap.String("reference_type", event.ReferenceType),
				zap.String("status_reason", event.StatusReason))
		case *events.Event:
			logger.Info("event received",
				zap.String("event", event.Name),
				zap.Uint64("sender", event.SenderClientID),
				zap.Int("components", len(event.Components)))
		}
	}
}

func levelFromName(name string) log.Level {
	switch name {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
