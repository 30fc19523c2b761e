// Package wire implements the broker's on-the-wire JSON protocol: frame
// segmentation, schema validation, and the tagged-union message shapes of
// the nick/join/leave/msg/users/channels/quit/ping/pong command set.
package wire

// Reserved nicknames that may never be held by a session.
const (
	NickServer  = "SERVER"
	NickNewUser = "NEWUSER"
)

// Error kinds carried on the wire in an Envelope's Error field.
const (
	ErrBadNick   = "badnick"
	ErrSchema    = "schema"
	ErrNoChannel = "nochannel"
	ErrNonMember = "nonmember"
	ErrNonExist  = "nonexist"
	ErrMember    = "member"
)

// Replies carried on the wire in an Envelope's Reply field.
const (
	ReplyOK       = "OK"
	ReplyNames    = "names"
	ReplyChannels = "channels"
)

// Command names, always matched case-insensitively on decode.
const (
	CmdNick     = "nick"
	CmdQuit     = "quit"
	CmdJoin     = "join"
	CmdLeave    = "leave"
	CmdChannels = "channels"
	CmdUsers    = "users"
	CmdMsg      = "msg"
	CmdPing     = "ping"
	CmdPong     = "pong"
)

// Envelope is the universal wire shape: every frame the broker sends or
// receives unmarshals into (or is built from) one of these, with unused
// fields omitted. The field set is the union of every cmd/reply/error
// shape the protocol defines, plus `channel` and `client`, which a names
// reply carries alongside the member list.
type Envelope struct {
	Cmd      string   `json:"cmd,omitempty"`
	Src      string   `json:"src,omitempty"`
	Reply    string   `json:"reply,omitempty"`
	Error    string   `json:"error,omitempty"`
	Msg      string   `json:"msg,omitempty"`
	Update   string   `json:"update,omitempty"`
	Channels []string `json:"channels,omitempty"`
	Targets  []string `json:"targets,omitempty"`
	Channel  string   `json:"channel,omitempty"`
	Names    []string `json:"names,omitempty"`
	Client   *bool    `json:"client,omitempty"`
}

// BoolPtr is a small helper for building Envelopes where Client needs an
// explicit true/false rather than the zero value's implicit omission.
func BoolPtr(b bool) *bool { return &b }

// Nick builds a nick command/reply: "rename src to update".
func Nick(src, update string) Envelope {
	return Envelope{Cmd: CmdNick, Src: src, Update: update}
}

// Quit builds a quit command/reply.
func Quit(src, msg string) Envelope {
	return Envelope{Cmd: CmdQuit, Src: src, Msg: msg}
}

// Join builds a join command/reply.
func Join(src string, channels []string) Envelope {
	return Envelope{Cmd: CmdJoin, Src: src, Channels: channels}
}

// Leave builds a leave command/reply.
func Leave(src string, channels []string, msg string) Envelope {
	return Envelope{Cmd: CmdLeave, Src: src, Channels: channels, Msg: msg}
}

// Msg builds a msg command/reply.
func Msg(src string, targets []string, msg string) Envelope {
	return Envelope{Cmd: CmdMsg, Src: src, Targets: targets, Msg: msg}
}

// Ping builds a ping command carrying an opaque liveness payload.
func Ping(src, payload string) Envelope {
	return Envelope{Cmd: CmdPing, Src: src, Msg: payload}
}

// Pong builds a pong command echoing a liveness payload.
func Pong(src, payload string) Envelope {
	return Envelope{Cmd: CmdPong, Src: src, Msg: payload}
}

// NamesReply builds a names reply for one channel, one chunk of members at
// a time. An empty names slice is the chunk terminator.
func NamesReply(channel string, names []string, client bool) Envelope {
	return Envelope{Reply: ReplyNames, Channel: channel, Names: names, Client: BoolPtr(client)}
}

// ChannelsReply builds a channels listing reply, one chunk at a time. An
// empty channels slice is the chunk terminator.
func ChannelsReply(channels []string) Envelope {
	return Envelope{Reply: ReplyChannels, Channels: channels}
}

// OKReply builds a bare success acknowledgement.
func OKReply() Envelope {
	return Envelope{Reply: ReplyOK}
}

// ErrorReply builds a protocol error reply.
func ErrorReply(kind, msg string) Envelope {
	return Envelope{Error: kind, Msg: msg}
}
