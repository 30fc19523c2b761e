package core

import "github.com/vovakirdan/wirechat-broker/internal/wire"

// renameSession atomically moves a session's registry key, preserving
// nickname uniqueness: the old key is removed and the new key inserted in
// one step, with no intermediate state visible to other Hub operations
// (the Hub is the sole, serial mutator of sessions).
func (h *Hub) renameSession(s *Session, newNick string) {
	delete(h.sessions, s.Nick)
	s.Nick = newNick
	h.sessions[newNick] = s
}

// evict tears down a session: it announces a quit to the session and to
// the union of its channels, removes it from
// every channel, closes its connection, and deletes the registry entry.
// Idempotent — evicting an already-removed session is a no-op, which
// matters because liveness, read errors, and client-initiated quit can
// all race to evict the same session.
//
// The session itself is told the quit came from SERVER when fromServer is
// set (server shutdown); its channel-mates always see the
// departing session's own nick as the quit's src, since from their point
// of view it is that session leaving, not the server.
func (h *Hub) evict(s *Session, reason string, fromServer bool) {
	if _, live := h.sessions[s.Nick]; !live {
		return
	}

	selfSrc := s.Nick
	if fromServer {
		selfSrc = wire.NickServer
	}
	s.Sink.Send(wire.Quit(selfSrc, reason))

	fanoutAnnounce := wire.Quit(s.Nick, reason)

	recipients := make(map[Sink]struct{})
	for _, ch := range s.Channels {
		for member := range ch.Members {
			if member == s {
				continue
			}
			recipients[member.Sink] = struct{}{}
		}
	}
	for _, ch := range s.Channels {
		ch.removeMember(s)
	}
	for sink := range recipients {
		sink.Send(fanoutAnnounce)
	}

	delete(h.sessions, s.Nick)
	delete(h.byConn, s.Sink)
	s.Sink.Close()

	h.log.Info().Str("nick", s.Nick).Str("reason", reason).Bool("from_server", fromServer).Msg("session evicted")
}
