package core

// Channel is a named multicast group. Membership is mutual
// with Session.Channels: a Session is a member of a Channel iff the
// Channel appears in that Session's channel set.
type Channel struct {
	Name    string
	Members map[*Session]struct{}
}

func newChannel(name string) *Channel {
	return &Channel{Name: name, Members: make(map[*Session]struct{})}
}

func (c *Channel) addMember(s *Session) {
	c.Members[s] = struct{}{}
	s.Channels[c.Name] = c
}

func (c *Channel) removeMember(s *Session) {
	delete(c.Members, s)
	delete(s.Channels, c.Name)
}

func (c *Channel) memberNicks() []string {
	names := make([]string, 0, len(c.Members))
	for s := range c.Members {
		names = append(names, s.Nick)
	}
	return names
}
