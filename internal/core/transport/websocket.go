package transport

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// WebSocketConn carries JSON-framed messages over a websocket. The
// websocket already preserves message boundaries, so no extra framing is
// layered on top.
type WebSocketConn struct {
	conn *websocket.Conn
}

// DialWebSocket connects to a ws:// or wss:// endpoint.
func DialWebSocket(ctx context.Context, url string) (*WebSocketConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrDialFailed, "websocket %s: %v", url, err)
	}
	return &WebSocketConn{conn: conn}, nil
}

// NewWebSocketConn wraps an already-established websocket, e.g. one
// accepted server-side by an upgrader.
func NewWebSocketConn(conn *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{conn: conn}
}

func (c *WebSocketConn) Receive(ctx context.Context) (wire.Value, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return wire.Value{}, err
		}
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return wire.Value{}, ErrConnectionClosed
		}
		return wire.Value{}, errors.Wrap(err, "websocket read")
	}
	return UnmarshalValue(data)
}

func (c *WebSocketConn) Send(ctx context.Context, v wire.Value) error {
	data, err := MarshalValue(v)
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Wrap(err, "websocket write")
	}
	return nil
}

func (c *WebSocketConn) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(5*time.Second))
	return c.conn.Close()
}
