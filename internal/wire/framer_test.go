package wire

import (
	"bytes"
	"strings"
	"testing"
)

func TestFramerSplitsOnCRLF(t *testing.T) {
	var f Framer
	f.Feed([]byte(`{"cmd":"ping","src":"a","msg":"1"}` + "\r\n" + `{"cmd":"ping","src":"a","msg":"2"}` + "\r\n"))

	frames, oversized := f.Extract()
	if oversized != 0 {
		t.Fatalf("unexpected oversized count: %d", oversized)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if !bytes.Contains(frames[0], []byte(`"1"`)) || !bytes.Contains(frames[1], []byte(`"2"`)) {
		t.Fatalf("frame contents wrong: %q %q", frames[0], frames[1])
	}
}

func TestFramerToleratesBareLF(t *testing.T) {
	var f Framer
	f.Feed([]byte(`{"cmd":"ping","src":"a","msg":"x"}` + "\n"))

	frames, oversized := f.Extract()
	if oversized != 0 || len(frames) != 1 {
		t.Fatalf("expected 1 frame, 0 oversized, got %d frames, %d oversized", len(frames), oversized)
	}
}

func TestFramerDropsEmptyFrames(t *testing.T) {
	var f Framer
	f.Feed([]byte("\r\n\r\n" + `{"cmd":"ping","src":"a","msg":"x"}` + "\r\n"))

	frames, oversized := f.Extract()
	if oversized != 0 {
		t.Fatalf("unexpected oversized count: %d", oversized)
	}
	if len(frames) != 1 {
		t.Fatalf("expected empty frames to be dropped, got %d frames", len(frames))
	}
}

func TestFramerAcceptsExactlyMaxFrameSize(t *testing.T) {
	pad := strings.Repeat("a", MaxFrameSize-2-len(`{"cmd":"ping","src":"a","msg":""}`))
	body := `{"cmd":"ping","src":"a","msg":"` + pad + `"}`

	var f Framer
	f.Feed([]byte(body + "\r\n"))
	if len(body)+2 != MaxFrameSize {
		t.Fatalf("test setup wrong: frame is %d bytes, want %d", len(body)+2, MaxFrameSize)
	}

	frames, oversized := f.Extract()
	if oversized != 0 || len(frames) != 1 {
		t.Fatalf("expected exactly-at-limit frame to be accepted, got %d frames, %d oversized", len(frames), oversized)
	}
}

func TestFramerDiscardsOverMaxFrameSize(t *testing.T) {
	pad := strings.Repeat("a", MaxFrameSize)
	body := `{"cmd":"ping","src":"a","msg":"` + pad + `"}`

	var f Framer
	f.Feed([]byte(body + "\r\n"))

	frames, oversized := f.Extract()
	if oversized != 1 || len(frames) != 0 {
		t.Fatalf("expected the oversized frame to be discarded, got %d frames, %d oversized", len(frames), oversized)
	}
}

func TestFramerDiscardsUnterminatedOverflow(t *testing.T) {
	var f Framer
	f.Feed([]byte(strings.Repeat("a", MaxFrameSize+1)))

	frames, oversized := f.Extract()
	if oversized != 1 || len(frames) != 0 {
		t.Fatalf("expected unterminated overflow to be discarded, got %d frames, %d oversized", len(frames), oversized)
	}
}

func TestFramerHoldsPartialFrameAcrossFeeds(t *testing.T) {
	var f Framer
	f.Feed([]byte(`{"cmd":"ping",`))
	frames, oversized := f.Extract()
	if len(frames) != 0 || oversized != 0 {
		t.Fatalf("expected no frames before terminator, got %d frames, %d oversized", len(frames), oversized)
	}

	f.Feed([]byte(`"src":"a","msg":"x"}` + "\r\n"))
	frames, oversized = f.Extract()
	if len(frames) != 1 || oversized != 0 {
		t.Fatalf("expected the completed frame once terminator arrives, got %d frames, %d oversized", len(frames), oversized)
	}
}

func TestEncodeAppendsCRLF(t *testing.T) {
	out, err := Encode(Ping("SERVER", "abc"))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !bytes.HasSuffix(out, []byte("\r\n")) {
		t.Fatalf("expected frame to end in CRLF, got %q", out)
	}
}
