// Package core implements the broker: the session and channel registries,
// the command dispatcher, the router/fan-out, and the liveness driver. It
// is transport-agnostic — it speaks wire.Envelope values and the Sink
// interface, never a net.Conn.
package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-broker/internal/petname"
	"github.com/vovakirdan/wirechat-broker/internal/wire"
)

// LivenessConfig tunes the ping round cadence.
type LivenessConfig struct {
	// TickInterval is how often the Hub wakes to consider a ping round.
	TickInterval time.Duration
	// PingInterval is the wall-clock threshold since the last ping round.
	PingInterval time.Duration
	// PingTimeoutTicks is the tick-count threshold since the last ping round.
	PingTimeoutTicks int
}

// DefaultLivenessConfig requires both 2 seconds and 2 ticks to have
// elapsed since the last ping round before another one fires.
func DefaultLivenessConfig() LivenessConfig {
	return LivenessConfig{
		TickInterval:     500 * time.Millisecond,
		PingInterval:     2 * time.Second,
		PingTimeoutTicks: 2,
	}
}

type eventKind int

const (
	evConnect eventKind = iota
	evFrame
	evOversized
	evDisconnect
)

type hubEvent struct {
	kind       eventKind
	sink       Sink
	remote     string
	connID     string
	raw        []byte
	reason     string
	fromServer bool
}

// Hub is the single serial owner of the session registry and the channel
// registry. All mutation of that state happens inside Run, driven by
// events pushed from connection goroutines through Connect, Frame,
// Oversized, and Disconnect. No lock guards sessions or channels because
// only the Run goroutine ever touches them.
type Hub struct {
	log    *zerolog.Logger
	cfg    LivenessConfig
	events chan hubEvent

	sessions map[string]*Session
	byConn   map[Sink]*Session
	channels map[string]*Channel

	lastPingRound  time.Time
	ticksSincePing int
}

// New constructs a Hub. Call Run to start its event loop.
func New(log *zerolog.Logger, cfg LivenessConfig) *Hub {
	return &Hub{
		log:      log,
		cfg:      cfg,
		events:   make(chan hubEvent, 1024),
		sessions: make(map[string]*Session),
		byConn:   make(map[Sink]*Session),
		channels: make(map[string]*Channel),
	}
}

// Connect registers a newly accepted connection and assigns it a
// petname-generated nickname.
func (h *Hub) Connect(sink Sink, connID, remote string) {
	h.events <- hubEvent{kind: evConnect, sink: sink, connID: connID, remote: remote}
}

// Frame submits one schema-validated-by-nobody-yet raw frame for
// processing; Decode happens inside the Hub goroutine so that the sender's
// current nickname (needed for anti-spoof checking) is read without a race.
func (h *Hub) Frame(sink Sink, raw []byte) {
	h.events <- hubEvent{kind: evFrame, sink: sink, raw: raw}
}

// Oversized reports a frame the Framer discarded for exceeding its
// configured size limit (wire.MaxFrameSize by default), so the Hub can
// reply with a schema error.
func (h *Hub) Oversized(sink Sink) {
	h.events <- hubEvent{kind: evOversized, sink: sink}
}

// Disconnect reports a dead connection (read error or EOF). Backpressure
// is detected by the Hub itself when a Sink's Send fails (see deliver).
func (h *Hub) Disconnect(sink Sink, reason string) {
	h.events <- hubEvent{kind: evDisconnect, sink: sink, reason: reason}
}

// Run drives the event loop until ctx is cancelled, at which point it
// performs an ordered shutdown: every live session is evicted with
// fromServer=true and reason "Server Shutdown" before Run returns.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.TickInterval)
	defer ticker.Stop()

	h.lastPingRound = time.Now()

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case ev := <-h.events:
			h.handle(ev)
		case <-ticker.C:
			h.onTick()
		}
	}
}

func (h *Hub) handle(ev hubEvent) {
	switch ev.kind {
	case evConnect:
		h.onConnect(ev.sink, ev.connID, ev.remote)
	case evFrame:
		h.onFrame(ev.sink, ev.raw)
	case evOversized:
		h.onOversized(ev.sink)
	case evDisconnect:
		h.onDisconnect(ev.sink, ev.reason)
	}
}

func (h *Hub) onConnect(sink Sink, connID, remote string) {
	nick := petname.Generate(func(n string) bool {
		if wire.Reserved(n) {
			return true
		}
		_, taken := h.sessions[n]
		return taken
	})

	s := newSession(nick, connID, sink)
	h.sessions[nick] = s
	h.byConn[sink] = s

	h.log.Info().Str("nick", nick).Str("remote", remote).Str("conn", connID).Msg("session connected")

	h.deliver(s, wire.Nick(wire.NickServer, nick))
}

func (h *Hub) onFrame(sink Sink, raw []byte) {
	s, ok := h.byConn[sink]
	if !ok {
		return // already evicted; drop
	}

	env, err := wire.Decode(raw, s.Nick)
	if err != nil {
		h.deliver(s, wire.ErrorReply(wire.ErrSchema, err.Error()))
		h.log.Debug().Str("nick", s.Nick).Err(err).Msg("schema error")
		return
	}

	h.dispatch(s, env)
}

func (h *Hub) onOversized(sink Sink) {
	s, ok := h.byConn[sink]
	if !ok {
		return
	}
	h.deliver(s, wire.ErrorReply(wire.ErrSchema, "frame exceeds maximum size"))
}

func (h *Hub) onDisconnect(sink Sink, reason string) {
	s, ok := h.byConn[sink]
	if !ok {
		return
	}
	h.evict(s, reason, false)
}

func (h *Hub) shutdown() {
	for _, s := range h.snapshotSessions() {
		h.evict(s, "Server Shutdown", true)
	}
}

// deliver enqueues env on s's outbound buffer. A full buffer is treated as
// a transport error: the session is evicted rather than allowed to grow
// its outbound queue unbounded.
func (h *Hub) deliver(s *Session, env wire.Envelope) {
	if !s.Sink.Send(env) {
		h.evict(s, "Send Buffer Full", false)
	}
}

func (h *Hub) snapshotSessions() []*Session {
	out := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}
