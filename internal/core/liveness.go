package core

import (
	"strconv"
	"time"

	"github.com/vovakirdan/wirechat-broker/internal/wire"
)

// onTick is driven by the Hub's ticker. A ping round only actually fires
// once both the wall-clock and tick-count thresholds are exceeded; the
// channel sweep runs immediately after a ping round, not on every tick,
// so an emptied channel may briefly persist.
func (h *Hub) onTick() {
	h.ticksSincePing++
	if time.Since(h.lastPingRound) <= h.cfg.PingInterval || h.ticksSincePing <= h.cfg.PingTimeoutTicks {
		return
	}

	h.pingRound()
	h.lastPingRound = time.Now()
	h.ticksSincePing = 0
	h.sweepEmptyChannels()
}

// pingRound evicts any session that still has a pending ping from the
// previous round, then issues a fresh ping to every remaining session.
// The invariant this enforces: a session with a pending ping at the
// start of a round is evicted before the next round begins.
func (h *Hub) pingRound() {
	payload := strconv.FormatInt(time.Now().UnixNano(), 10)
	for _, s := range h.snapshotSessions() {
		if s.PendingPing != nil {
			h.evict(s, "No ping response", false)
			continue
		}
		p := payload
		s.PendingPing = &p
		h.deliver(s, wire.Ping(wire.NickServer, p))
	}
}

// sweepEmptyChannels destroys every channel with no members left.
func (h *Hub) sweepEmptyChannels() {
	for name, ch := range h.channels {
		if len(ch.Members) == 0 {
			delete(h.channels, name)
		}
	}
}
