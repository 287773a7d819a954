package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/components"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/events"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/transport"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// scriptedConn replays queued inbound messages and captures outbound ones.
type scriptedConn struct {
	mu       sync.Mutex
	inbound  []wire.Value
	outbound []wire.Value
	closed   chan struct{}
}

func newScriptedConn(inbound ...wire.Value) *scriptedConn {
	return &scriptedConn{inbound: inbound, closed: make(chan struct{})}
}

func (c *scriptedConn) Receive(ctx context.Context) (wire.Value, error) {
	c.mu.Lock()
	if len(c.inbound) > 0 {
		msg := c.inbound[0]
		c.inbound = c.inbound[1:]
		c.mu.Unlock()
		return msg, nil
	}
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return wire.Value{}, ctx.Err()
	case <-c.closed:
		return wire.Value{}, transport.ErrConnectionClosed
	}
}

func (c *scriptedConn) Send(_ context.Context, v wire.Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outbound = append(c.outbound, v)
	return nil
}

func (c *scriptedConn) Close() error {
	close(c.closed)
	return nil
}

func (c *scriptedConn) sent() []wire.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]wire.Value, len(c.outbound))
	copy(out, c.outbound)
	return out
}

func tagged(t wire.ItemType, payload wire.Value) wire.Value {
	return wire.Sequence(wire.UInt(uint64(t)), wire.Sequence(payload))
}

func TestClient_DeliversDecodedEvents(t *testing.T) {
	msg := wire.Sequence(
		wire.String(events.AsyncCallCompletedEventName),
		wire.UInt(123),
		wire.Null(),
		wire.IntMap(map[uint64]wire.Value{
			0: tagged(wire.ItemTypeString, wire.String("DuplicateSpace")),
			1: tagged(wire.ItemTypeString, wire.String("ref-1")),
			2: tagged(wire.ItemTypeString, wire.String("GroupId")),
		}),
	)
	conn := newScriptedConn(msg)

	received := make(chan events.TypedEvent, 1)
	c := New(conn, func(e events.TypedEvent) { received <- e }, 10*time.Millisecond, log.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case e := <-received:
		event, ok := e.(*events.AsyncCallCompletedEvent)
		require.True(t, ok)
		require.Equal(t, "DuplicateSpace", event.OperationName)
	case <-ctx.Done():
		t.Fatal("no event delivered")
	}

	require.NoError(t, conn.Close())
	require.NoError(t, <-done)
}

func TestClient_MalformedMessageIsDroppedNotFatal(t *testing.T) {
	bad := wire.Sequence(wire.String("TooShort"))
	good := wire.Sequence(
		wire.String("LaterEvent"),
		wire.UInt(9),
		wire.Null(),
		wire.IntMap(nil),
	)
	conn := newScriptedConn(bad, good)

	received := make(chan events.TypedEvent, 2)
	c := New(conn, func(e events.TypedEvent) { received <- e }, 10*time.Millisecond, log.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	select {
	case e := <-received:
		require.Equal(t, "LaterEvent", e.EventName())
	case <-ctx.Done():
		t.Fatal("good message was not delivered after the bad one")
	}
}

func TestClient_FlushesDirtyPropertiesToConnection(t *testing.T) {
	conn := newScriptedConn()
	c := New(conn, func(events.TypedEvent) {}, 5*time.Millisecond, log.Nop())

	entity := components.NewSpaceEntity("crate")
	collision := components.NewCollisionComponent(log.Nop())
	entity.AddComponent(collision)
	c.AddEntity(entity)
	collision.SetPosition(replicated.Vector3{X: 2})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(conn.sent()) > 0
	}, time.Second, 5*time.Millisecond)

	sent := conn.sent()[0]
	elems, err := sent.AsSequence()
	require.NoError(t, err)

	name, err := elems[0].AsString()
	require.NoError(t, err)
	require.Equal(t, "ComponentPatch", name)

	id, err := elems[1].AsString()
	require.NoError(t, err)
	require.Equal(t, entity.ID().String(), id)
}
