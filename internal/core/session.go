package core

// Session is one connected client as tracked by the Hub.
// The Hub's session registry is its sole owner; Channels hold only
// non-owning back-references via pointer identity.
type Session struct {
	Nick        string
	ConnID      string
	Sink        Sink
	Channels    map[string]*Channel
	PendingPing *string
}

func newSession(nick, connID string, sink Sink) *Session {
	return &Session{
		Nick:     nick,
		ConnID:   connID,
		Sink:     sink,
		Channels: make(map[string]*Channel),
	}
}

func (s *Session) channelNames() []string {
	names := make([]string, 0, len(s.Channels))
	for name := range s.Channels {
		names = append(names, name)
	}
	return names
}
