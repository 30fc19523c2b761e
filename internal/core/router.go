package core

// resolveTargets expands a target list (nicknames and/or channel names)
// into the deduplicated set of destination sessions. Names
// that resolve to neither a session nor a channel are returned separately;
// callers decide whether an empty or partial resolution is an error.
func (h *Hub) resolveTargets(targets []string) (dest map[*Session]struct{}, unresolved []string) {
	dest = make(map[*Session]struct{})
	for _, t := range targets {
		if isChannelTarget(t) {
			ch, ok := h.channels[t]
			if !ok {
				unresolved = append(unresolved, t)
				continue
			}
			for member := range ch.Members {
				dest[member] = struct{}{}
			}
			continue
		}
		s, ok := h.sessions[t]
		if !ok {
			unresolved = append(unresolved, t)
			continue
		}
		dest[s] = struct{}{}
	}
	return dest, unresolved
}

// sessionAndChannelMembers collects the dedup'd recipient set for a
// session itself plus every channel it belongs to — used to fan a `nick`
// announcement out to everyone who needs to see it.
func sessionAndChannelMembers(s *Session) map[*Session]struct{} {
	dest := map[*Session]struct{}{s: {}}
	for _, ch := range s.Channels {
		for member := range ch.Members {
			dest[member] = struct{}{}
		}
	}
	return dest
}
