//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"time"

	"github.com/google/wire"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/client"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/transport"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}

// InitializeClient assembles a replication client around an established
// connection.
func InitializeClient(conn transport.Conn, handler client.Handler, flushInterval time.Duration) *client.Client {
	wire.Build(client.New, log.Provide)
	return nil
}
