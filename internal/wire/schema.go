package wire

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	nickPattern    = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
	channelPattern = regexp.MustCompile(`^#[A-Za-z0-9]{1,10}$`)
)

// ValidNick reports whether n is 1-10 alphanumeric characters.
func ValidNick(n string) bool { return nickPattern.MatchString(n) }

// ValidChannel reports whether c is a '#' followed by 1-10 alphanumeric
// characters.
func ValidChannel(c string) bool { return channelPattern.MatchString(c) }

// Reserved reports whether n is one of the names no session may hold.
func Reserved(n string) bool { return n == NickServer || n == NickNewUser }

// SchemaError is returned by Decode when a frame fails schema validation.
// It carries no wire representation of its own; callers turn it into an
// ErrorReply(ErrSchema, ...) addressed to the sender.
type SchemaError struct{ Reason string }

func (e *SchemaError) Error() string { return e.Reason }

func schemaErr(reason string) error { return &SchemaError{Reason: reason} }

// Decode parses and schema-validates one client-origin frame. expectedSrc
// is the sender's current nickname; a mismatched or missing `src` is
// rejected as a spoofing attempt.
func Decode(raw []byte, expectedSrc string) (Envelope, error) {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Envelope{}, schemaErr("invalid json")
	}

	cmdRaw, ok := generic["cmd"]
	if !ok {
		return Envelope{}, schemaErr("missing cmd")
	}
	cmdStr, ok := cmdRaw.(string)
	if !ok || cmdStr == "" {
		return Envelope{}, schemaErr("cmd must be a non-empty string")
	}
	cmd := strings.ToLower(cmdStr)

	srcRaw, ok := generic["src"]
	srcStr, _ := srcRaw.(string)
	if !ok || srcStr == "" {
		return Envelope{}, schemaErr("missing src")
	}
	if srcStr != expectedSrc {
		return Envelope{}, schemaErr("src does not match sender")
	}

	switch cmd {
	case CmdNick:
		update, ok := generic["update"].(string)
		if !ok || update == "" {
			return Envelope{}, schemaErr("nick requires update")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Update: update}, nil

	case CmdQuit:
		msg, ok := generic["msg"].(string)
		if !ok {
			return Envelope{}, schemaErr("quit requires msg")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Msg: msg}, nil

	case CmdJoin:
		channels, ok := decodeChannelArray(generic["channels"], 1)
		if !ok {
			return Envelope{}, schemaErr("join requires channels")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Channels: channels}, nil

	case CmdLeave:
		channels, ok := decodeChannelArray(generic["channels"], 1)
		if !ok {
			return Envelope{}, schemaErr("leave requires channels")
		}
		msg, ok := generic["msg"].(string)
		if !ok {
			return Envelope{}, schemaErr("leave requires msg")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Channels: channels, Msg: msg}, nil

	case CmdChannels:
		return Envelope{Cmd: cmd, Src: srcStr}, nil

	case CmdUsers:
		env := Envelope{Cmd: cmd, Src: srcStr}
		if raw, present := generic["channels"]; present {
			channels, ok := decodeChannelArray(raw, 0)
			if !ok {
				return Envelope{}, schemaErr("users channels malformed")
			}
			env.Channels = channels
		}
		if raw, present := generic["client"]; present {
			b, ok := raw.(bool)
			if !ok {
				return Envelope{}, schemaErr("users client must be a bool")
			}
			env.Client = BoolPtr(b)
		}
		return env, nil

	case CmdMsg:
		targets, ok := decodeTargetArray(generic["targets"])
		if !ok {
			return Envelope{}, schemaErr("msg requires targets")
		}
		msg, ok := generic["msg"].(string)
		if !ok {
			return Envelope{}, schemaErr("msg requires msg")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Targets: targets, Msg: msg}, nil

	case CmdPing:
		msg, ok := generic["msg"].(string)
		if !ok {
			return Envelope{}, schemaErr("ping requires msg")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Msg: msg}, nil

	case CmdPong:
		msg, ok := generic["msg"].(string)
		if !ok {
			return Envelope{}, schemaErr("pong requires msg")
		}
		return Envelope{Cmd: cmd, Src: srcStr, Msg: msg}, nil

	default:
		return Envelope{}, schemaErr("unknown cmd " + cmd)
	}
}

// decodeChannelArray validates a JSON value as a unique array of at least
// minItems channel names. A missing field (v == nil) satisfies minItems 0.
func decodeChannelArray(v any, minItems int) ([]string, bool) {
	if v == nil {
		return nil, minItems == 0
	}
	arr, ok := v.([]any)
	if !ok || len(arr) < minItems {
		return nil, false
	}
	seen := make(map[string]bool, len(arr))
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok || !ValidChannel(s) || seen[s] {
			return nil, false
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, true
}

// decodeTargetArray validates a JSON value as a unique, non-empty array of
// nicknames and/or channel names.
func decodeTargetArray(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 1 {
		return nil, false
	}
	seen := make(map[string]bool, len(arr))
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok || seen[s] {
			return nil, false
		}
		if !ValidNick(s) && !ValidChannel(s) {
			return nil, false
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, true
}
