package transport

import (
	"context"
	"crypto/tls"
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/quic-go/quic-go"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

const quicNextProto = "csp-replication"

// QUICConn carries length-prefixed JSON frames over a single bidirectional
// QUIC stream: 4-byte big-endian length followed by the message bytes.
type QUICConn struct {
	conn   quic.Connection
	stream quic.Stream

	readMu  sync.Mutex
	writeMu sync.Mutex
}

// DialQUIC connects and opens the replication stream.
func DialQUIC(ctx context.Context, addr string, tlsConf *tls.Config) (*QUICConn, error) {
	if tlsConf == nil {
		tlsConf = &tls.Config{}
	}
	if len(tlsConf.NextProtos) == 0 {
		tlsConf = tlsConf.Clone()
		tlsConf.NextProtos = []string{quicNextProto}
	}

	conn, err := quic.DialAddr(ctx, addr, tlsConf, &quic.Config{
		MaxIdleTimeout:  30 * time.Second,
		KeepAlivePeriod: 10 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrDialFailed, "quic %s: %v", addr, err)
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "stream open failed")
		return nil, errors.Wrap(err, "open replication stream")
	}

	return &QUICConn{conn: conn, stream: stream}, nil
}

func (c *QUICConn) Receive(ctx context.Context) (wire.Value, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.stream.SetReadDeadline(deadline); err != nil {
			return wire.Value{}, err
		}
	}

	var header [4]byte
	if _, err := io.ReadFull(c.stream, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return wire.Value{}, ErrConnectionClosed
		}
		return wire.Value{}, errors.Wrap(err, "read frame header")
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 {
		return wire.Value{}, errors.Wrap(ErrInvalidFrame, "zero-length frame")
	}
	if length > maxFrameSize {
		return wire.Value{}, errors.Wrapf(ErrFrameTooLarge, "%d bytes", length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(c.stream, data); err != nil {
		return wire.Value{}, errors.Wrap(err, "read frame payload")
	}
	return UnmarshalValue(data)
}

func (c *QUICConn) Send(ctx context.Context, v wire.Value) error {
	data, err := MarshalValue(v)
	if err != nil {
		return err
	}
	if len(data) > maxFrameSize {
		return errors.Wrapf(ErrFrameTooLarge, "%d bytes", len(data))
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.stream.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	if _, err := c.stream.Write(header[:]); err != nil {
		return errors.Wrap(err, "write frame header")
	}
	if _, err := c.stream.Write(data); err != nil {
		return errors.Wrap(err, "write frame payload")
	}
	return nil
}

func (c *QUICConn) Close() error {
	_ = c.stream.Close()
	return c.conn.CloseWithError(0, "")
}
