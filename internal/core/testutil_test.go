package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-broker/internal/wire"
)

type fakeSink struct {
	id     string
	sent   chan wire.Envelope
	closed chan struct{}
	full   bool
}

func newFakeSink(id string) *fakeSink {
	return &fakeSink{id: id, sent: make(chan wire.Envelope, 64), closed: make(chan struct{})}
}

func (f *fakeSink) Send(env wire.Envelope) bool {
	if f.full {
		return false
	}
	select {
	case f.sent <- env:
		return true
	default:
		return false
	}
}

func (f *fakeSink) Close() {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
}

func (f *fakeSink) RemoteAddr() string { return f.id }

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func fastLiveness() LivenessConfig {
	return LivenessConfig{
		TickInterval:     10 * time.Millisecond,
		PingInterval:     50 * time.Millisecond,
		PingTimeoutTicks: 2,
	}
}

func mustEnvelope(t *testing.T, ch <-chan wire.Envelope, match func(wire.Envelope) bool) wire.Envelope {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case env := <-ch:
			if match(env) {
				return env
			}
		case <-deadline:
			t.Fatalf("no matching envelope received")
		}
	}
}

func noMoreEnvelopes(t *testing.T, ch <-chan wire.Envelope) {
	t.Helper()
	select {
	case env := <-ch:
		t.Fatalf("unexpected envelope: %+v", env)
	case <-time.After(50 * time.Millisecond):
	}
}
