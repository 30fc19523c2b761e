package wire

import "bytes"

// MaxFrameSize is the maximum size, in bytes, of one frame including its
// terminator.
const MaxFrameSize = 1024

// ReadChunk is the amount appended to a connection's receive buffer per
// read.
const ReadChunk = 1024

// Framer cuts an inbound byte stream into frames on a CRLF (or bare LF)
// terminator. It does not interpret JSON; that is Decode's job. One Framer
// is owned per connection and holds only the unterminated tail of the
// stream between reads.
//
// The zero value frames at MaxFrameSize. Use NewFramer to override the cap,
// e.g. from configuration.
type Framer struct {
	rx      []byte
	maxSize int
}

// NewFramer returns a Framer capping frames at maxSize bytes including the
// terminator. A maxSize of 0 or less falls back to MaxFrameSize.
func NewFramer(maxSize int) *Framer {
	return &Framer{maxSize: maxSize}
}

func (f *Framer) limit() int {
	if f.maxSize > 0 {
		return f.maxSize
	}
	return MaxFrameSize
}

// Feed appends newly read bytes to the receive buffer.
func (f *Framer) Feed(b []byte) {
	f.rx = append(f.rx, b...)
}

// Extract removes and returns every complete frame currently buffered.
// Empty frames (back-to-back terminators) are dropped silently. A frame
// whose bytes, including the terminator, exceed the configured limit is
// discarded and reported via oversized rather than returned in frames.
func (f *Framer) Extract() (frames [][]byte, oversized int) {
	limit := f.limit()
	for {
		nl := bytes.IndexByte(f.rx, '\n')
		if nl < 0 {
			// No terminator yet; if the unterminated prefix alone already
			// exceeds the frame budget, nothing useful can ever complete it.
			if len(f.rx) > limit {
				oversized++
				f.rx = nil
			}
			return frames, oversized
		}

		end := nl
		frameLen := nl + 1 // bytes consumed including '\n'
		if end > 0 && f.rx[end-1] == '\r' {
			end--
		}
		body := f.rx[:end]
		f.rx = f.rx[frameLen:]

		switch {
		case len(body) == 0:
			// Empty frames (back-to-back terminators) are dropped silently.
		case frameLen > limit:
			oversized++
		default:
			cp := make([]byte, len(body))
			copy(cp, body)
			frames = append(frames, cp)
		}
	}
}

// Encode renders env as a UTF-8 JSON object followed by "\r\n", ready to
// append to a connection's send buffer.
func Encode(env Envelope) ([]byte, error) {
	body, err := encodeJSON(env)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+2)
	out = append(out, body...)
	out = append(out, '\r', '\n')
	return out, nil
}
