package tcp

import (
	"net"
	"sync"

	"github.com/vovakirdan/wirechat-broker/internal/core"
	"github.com/vovakirdan/wirechat-broker/internal/wire"
)

// connSink is the tcp transport's implementation of core.Sink: an
// append-only FIFO of encoded frames, drained by writeLoop, with a fixed
// capacity so a stalled reader can't grow memory without bound — once
// full, Send reports failure instead of blocking or queuing more.
type connSink struct {
	conn   net.Conn
	out    chan []byte
	remote string

	closeOnce sync.Once
}

var _ core.Sink = (*connSink)(nil)

func newConnSink(conn net.Conn, outCap int) *connSink {
	return &connSink{
		conn:   conn,
		out:    make(chan []byte, outCap),
		remote: conn.RemoteAddr().String(),
	}
}

func (c *connSink) Send(env wire.Envelope) bool {
	frame, err := wire.Encode(env)
	if err != nil {
		return false
	}
	select {
	case c.out <- frame:
		return true
	default:
		return false
	}
}

func (c *connSink) Close() {
	c.closeOnce.Do(func() {
		close(c.out)
		_ = c.conn.Close()
	})
}

func (c *connSink) RemoteAddr() string { return c.remote }
