// Package transport adapts byte transports to the wire value trees the
// decoder consumes. Message boundaries are resolved here: one Receive call
// yields exactly one complete logical message.
package transport

import (
	"context"
	"errors"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

var (
	ErrConnectionClosed = errors.New("connection is closed")
	ErrDialFailed       = errors.New("dial failed")
	ErrInvalidFrame     = errors.New("invalid frame")
	ErrFrameTooLarge    = errors.New("frame too large")
)

// maxFrameSize bounds a single message on the stream transports.
const maxFrameSize = 16 << 20

// Conn is a message-oriented connection carrying wire value trees.
type Conn interface {
	// Receive blocks for the next complete message.
	Receive(ctx context.Context) (wire.Value, error)

	// Send writes one complete message.
	Send(ctx context.Context, v wire.Value) error

	Close() error
}
