package core

import "github.com/vovakirdan/wirechat-broker/internal/wire"

// Sink is the broker's view of a connection's outbound side: an
// append-only FIFO drained by that connection's writer goroutine.
//
// Implementations live in internal/transport; core never touches a
// net.Conn directly, only this interface, so the Hub's registries stay
// transport-agnostic and easy to drive from tests with a fake Sink.
type Sink interface {
	// Send enqueues one frame. It returns false if the outbound queue is
	// full; the Hub treats that as a transport error and evicts the
	// session.
	Send(env wire.Envelope) bool
	// Close tears down the underlying connection. Idempotent.
	Close()
	// RemoteAddr identifies the connection for logging.
	RemoteAddr() string
}
