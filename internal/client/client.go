// Package client runs the receive and flush loops of the replication
// client: inbound messages are decoded into typed events and handed to the
// dispatcher, outbound dirty properties are flushed on a fixed cadence.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/components"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/events"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replication"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/transport"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// Handler receives every successfully decoded event.
type Handler func(events.TypedEvent)

// Client owns one connection and the entities replicated over it.
type Client struct {
	conn          transport.Conn
	decoder       *events.Decoder
	sender        *replication.Sender
	handler       Handler
	flushInterval time.Duration
	log           *log.Logger

	mu       sync.RWMutex
	entities []*components.SpaceEntity
}

func New(conn transport.Conn, handler Handler, flushInterval time.Duration, logger *log.Logger) *Client {
	c := &Client{
		conn:          conn,
		decoder:       events.NewDecoder(logger),
		handler:       handler,
		flushInterval: flushInterval,
		log:           logger,
	}
	c.sender = replication.NewSender(&connSink{conn: conn}, logger)
	return c
}

// AddEntity registers an entity for dirty-property flushing.
func (c *Client) AddEntity(entity *components.SpaceEntity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = append(c.entities, entity)
}

func (c *Client) snapshotEntities() []*components.SpaceEntity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*components.SpaceEntity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Run blocks until the context is cancelled or the connection fails.
// A peer-initiated close and a cancelled context are both clean shutdowns.
func (c *Client) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.receiveLoop(ctx) })
	g.Go(func() error { return c.flushLoop(ctx) })

	err := g.Wait()
	if errors.Is(err, transport.ErrConnectionClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// receiveLoop decodes inbound messages one at a time. A malformed message
// is dropped with a diagnostic; it never takes the connection down.
func (c *Client) receiveLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := c.conn.Receive(ctx)
		if err != nil {
			if errors.Is(err, transport.ErrConnectionClosed) {
				c.log.Info("connection closed by peer")
			}
			return errors.Wrap(err, "receive")
		}

		event, err := c.decoder.Decode(msg)
		if err != nil {
			c.log.Error("dropping undecodable event", zap.Error(err))
			continue
		}
		c.handler(event)
	}
}

func (c *Client) flushLoop(ctx context.Context) error {
	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.sender.Flush(ctx, c.snapshotEntities()); err != nil {
				return errors.Wrap(err, "flush")
			}
		}
	}
}

// componentPatchMessageName tags outbound patch messages.
const componentPatchMessageName = "ComponentPatch"

// connSink re-frames each patch as a wire message and ships it on the
// connection.
type connSink struct {
	conn transport.Conn
}

func (s *connSink) Send(ctx context.Context, patch replication.Patch) error {
	msg := wire.Sequence(
		wire.String(componentPatchMessageName),
		wire.String(patch.EntityID.String()),
		wire.UInt(uint64(patch.ComponentType)),
		wire.IntMap(patch.Items),
	)
	return s.conn.Send(ctx, msg)
}
