// Package tcp is the broker's default transport: raw, CRLF-framed stream
// sockets. It bridges net.Conn to internal/core's Hub, translating
// connect/read/backpressure/disconnect events into the Sink interface core
// expects, with one reader goroutine and one writer goroutine per accepted
// connection.
package tcp

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-broker/internal/connid"
	"github.com/vovakirdan/wirechat-broker/internal/core"
	"github.com/vovakirdan/wirechat-broker/internal/wire"
)

// DefaultSendBuffer bounds each session's outbound frame queue before the
// Hub treats a full queue as a transport error.
const DefaultSendBuffer = 64

// Listener accepts connections and bridges each to the Hub.
type Listener struct {
	hub       *core.Hub
	log       *zerolog.Logger
	sendBuf   int
	frameSize int
	ln        net.Listener

	ready chan struct{}
	addr  string
}

// New constructs a Listener bound to no socket yet; call Serve to bind and
// accept. sendBuf bounds each session's outbound frame queue (0 falls back
// to DefaultSendBuffer); frameSize bounds inbound frame length (0 falls
// back to wire.MaxFrameSize).
func New(hub *core.Hub, log *zerolog.Logger, sendBuf, frameSize int) *Listener {
	if sendBuf <= 0 {
		sendBuf = DefaultSendBuffer
	}
	return &Listener{hub: hub, log: log, sendBuf: sendBuf, frameSize: frameSize, ready: make(chan struct{})}
}

// Addr blocks until Serve has successfully bound a socket, then returns its
// address. Mainly useful in tests that bind to port 0 and need to know
// which port the OS actually chose.
func (l *Listener) Addr() string {
	<-l.ready
	return l.addr
}

// Serve binds addr and accepts connections until ctx is cancelled. It
// returns the bind error immediately if the listen fails, so the caller can
// exit nonzero, or nil once ctx cancellation closes the listener cleanly.
func (l *Listener) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	l.ln = ln
	l.addr = ln.Addr().String()
	close(l.ready)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	l.log.Info().Str("addr", l.addr).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.log.Warn().Err(err).Msg("accept error")
			return err
		}
		l.accept(conn)
	}
}

func (l *Listener) accept(conn net.Conn) {
	sink := newConnSink(conn, l.sendBuf)
	id := connid.New()
	l.hub.Connect(sink, id, sink.RemoteAddr())

	go l.writeLoop(sink)
	go l.readLoop(conn, sink)
}

func (l *Listener) writeLoop(sink *connSink) {
	for frame := range sink.out {
		if _, err := sink.conn.Write(frame); err != nil {
			return
		}
	}
}

func (l *Listener) readLoop(conn net.Conn, sink *connSink) {
	framer := wire.NewFramer(l.frameSize)
	buf := make([]byte, wire.ReadChunk)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			framer.Feed(buf[:n])
			frames, oversized := framer.Extract()
			for i := 0; i < oversized; i++ {
				l.hub.Oversized(sink)
			}
			for _, f := range frames {
				l.hub.Frame(sink, f)
			}
		}
		if err != nil {
			l.hub.Disconnect(sink, "Connection Drop")
			return
		}
	}
}
