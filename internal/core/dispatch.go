package core

import "github.com/vovakirdan/wirechat-broker/internal/wire"

// namesChunkSize is the fan-out chunk size for `names`/`channels` listings.
const namesChunkSize = 5

// dispatch maps a validated inbound command to its handler.
func (h *Hub) dispatch(s *Session, env wire.Envelope) {
	switch env.Cmd {
	case wire.CmdNick:
		h.handleNick(s, env)
	case wire.CmdJoin:
		h.handleJoin(s, env)
	case wire.CmdLeave:
		h.handleLeave(s, env)
	case wire.CmdChannels:
		h.handleChannels(s)
	case wire.CmdUsers:
		h.handleUsers(s, env)
	case wire.CmdMsg:
		h.handleMsg(s, env)
	case wire.CmdQuit:
		h.evict(s, env.Msg, false)
	case wire.CmdPing:
		// The broker never originates a reply to an inbound ping from a
		// client.
	case wire.CmdPong:
		h.handlePong(s, env)
	}
}

func (h *Hub) handleNick(s *Session, env wire.Envelope) {
	newNick := env.Update
	if !wire.ValidNick(newNick) || wire.Reserved(newNick) {
		h.deliver(s, wire.ErrorReply(wire.ErrBadNick, "nickname invalid"))
		return
	}
	if _, taken := h.sessions[newNick]; taken {
		h.deliver(s, wire.ErrorReply(wire.ErrBadNick, "nickname in use"))
		return
	}

	recipients := sessionAndChannelMembers(s)
	oldNick := s.Nick
	h.renameSession(s, newNick)

	announce := wire.Nick(oldNick, newNick)
	for member := range recipients {
		h.deliver(member, announce)
	}
}

func (h *Hub) handleJoin(s *Session, env wire.Envelope) {
	for _, name := range env.Channels {
		if _, already := s.Channels[name]; already {
			h.deliver(s, wire.ErrorReply(wire.ErrMember, "already a member of "+name))
			return
		}
	}

	for _, name := range env.Channels {
		ch, ok := h.channels[name]
		if !ok {
			ch = newChannel(name)
			h.channels[name] = ch
		}
		ch.addMember(s)

		announce := wire.Join(s.Nick, []string{name})
		for member := range ch.Members {
			h.deliver(member, announce)
		}

		h.sendNamesChunks(s, ch, false)
	}
}

func (h *Hub) handleLeave(s *Session, env wire.Envelope) {
	for _, name := range env.Channels {
		if _, ok := h.channels[name]; !ok {
			h.deliver(s, wire.ErrorReply(wire.ErrNoChannel, "no such channel "+name))
			return
		}
	}
	for _, name := range env.Channels {
		if _, member := s.Channels[name]; !member {
			h.deliver(s, wire.ErrorReply(wire.ErrNonMember, "not a member of "+name))
			return
		}
	}

	for _, name := range env.Channels {
		ch := h.channels[name]
		announce := wire.Leave(s.Nick, []string{name}, env.Msg)
		for member := range ch.Members {
			h.deliver(member, announce)
		}
		ch.removeMember(s)
	}
}

func (h *Hub) handleChannels(s *Session) {
	names := make([]string, 0, len(h.channels))
	for name := range h.channels {
		names = append(names, name)
	}
	sendChunked(names, namesChunkSize, func(chunk []string) {
		h.deliver(s, wire.ChannelsReply(chunk))
	})
	h.deliver(s, wire.ChannelsReply(nil))
}

// handleUsers answers a `users` query. An omitted `channels` field is
// treated as a NAMES-without-argument request and lists every live
// channel (decision recorded in DESIGN.md).
func (h *Hub) handleUsers(s *Session, env wire.Envelope) {
	client := false
	if env.Client != nil {
		client = *env.Client
	}

	targets := env.Channels
	if len(targets) == 0 {
		for name := range h.channels {
			targets = append(targets, name)
		}
	} else {
		for _, name := range targets {
			if _, ok := h.channels[name]; !ok {
				h.deliver(s, wire.ErrorReply(wire.ErrNoChannel, "no such channel "+name))
				return
			}
		}
	}

	for _, name := range targets {
		ch := h.channels[name]
		h.sendNamesChunks(s, ch, client)
	}
}

func (h *Hub) handleMsg(s *Session, env wire.Envelope) {
	for _, t := range env.Targets {
		if isChannelTarget(t) {
			if _, ok := h.channels[t]; !ok {
				h.deliver(s, wire.ErrorReply(wire.ErrNonExist, "no such target "+t))
				return
			}
		} else if _, ok := h.sessions[t]; !ok {
			h.deliver(s, wire.ErrorReply(wire.ErrNonExist, "no such target "+t))
			return
		}
	}

	for _, t := range env.Targets {
		if isChannelTarget(t) {
			if _, member := s.Channels[t]; !member {
				h.deliver(s, wire.ErrorReply(wire.ErrNonMember, "not a member of "+t))
				return
			}
		}
	}

	dest, _ := h.resolveTargets(env.Targets)
	announce := wire.Msg(s.Nick, env.Targets, env.Msg)
	for dst := range dest {
		h.deliver(dst, announce)
	}
}

func (h *Hub) handlePong(s *Session, env wire.Envelope) {
	if s.PendingPing == nil || env.Msg != *s.PendingPing {
		h.evict(s, "Unexpected Pong", false)
		return
	}
	s.PendingPing = nil
}

// sendNamesChunks replies to requester with ch's members in chunks of
// namesChunkSize, terminated by an empty names reply.
func (h *Hub) sendNamesChunks(requester *Session, ch *Channel, client bool) {
	names := ch.memberNicks()
	sendChunked(names, namesChunkSize, func(chunk []string) {
		h.deliver(requester, wire.NamesReply(ch.Name, chunk, client))
	})
	h.deliver(requester, wire.NamesReply(ch.Name, nil, false))
}

func sendChunked(items []string, size int, send func([]string)) {
	for len(items) > 0 {
		n := size
		if n > len(items) {
			n = len(items)
		}
		send(items[:n])
		items = items[n:]
	}
}

func isChannelTarget(t string) bool {
	return len(t) > 0 && t[0] == '#'
}
