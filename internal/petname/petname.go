// Package petname generates the two-word nicknames the broker assigns to
// newly accepted sessions: an adjective and a noun concatenated and
// truncated to fit the 10-character nickname grammar.
package petname

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

// maxBaseLen leaves room for a one-digit disambiguation suffix before the
// nickname's 10-character ceiling is hit.
const maxBaseLen = 9

var adjectives = []string{
	"quiet", "brave", "lucky", "rapid", "stark", "mild", "vivid", "gentle",
	"bold", "clever", "eager", "faint", "grand", "happy", "jolly", "keen",
	"loyal", "merry", "noble", "plain", "quick", "royal", "sharp", "tidy",
}

var nouns = []string{
	"otter", "falcon", "cedar", "ember", "harbor", "meadow", "pebble",
	"raven", "willow", "comet", "delta", "finch", "garnet", "heron",
	"ivory", "juniper", "kestrel", "lotus", "marsh", "nimbus", "opal",
	"pike", "quartz", "reef",
}

// candidate builds one alphanumeric-only base name from a random adjective
// and noun, truncated to maxBaseLen.
func candidate() string {
	a := pick(adjectives)
	n := pick(nouns)
	base := sanitize(a + n)
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	return base
}

func pick(words []string) string {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return words[0]
	}
	return words[idx.Int64()]
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate returns a nickname not reported as taken by `taken`, retrying
// with fresh word pairs and then digit suffixes until one fits within the
// 10-character nickname grammar. It never returns an unavailable name, but
// callers should still bound how many sessions they create: with a large
// enough population this can in principle loop for a long time.
func Generate(taken func(string) bool) string {
	for attempt := 0; attempt < 50; attempt++ {
		base := candidate()
		if base == "" {
			continue
		}
		if !taken(base) {
			return base
		}
		for suffix := 0; suffix < 10; suffix++ {
			n := base
			suf := strconv.Itoa(suffix)
			if len(n)+len(suf) > 10 {
				n = n[:10-len(suf)]
			}
			n += suf
			if !taken(n) {
				return n
			}
		}
	}
	// Exhausted retries; fall back to guest0, guest1, ... in order.
	for i := 0; ; i++ {
		n := "guest" + strconv.Itoa(i)
		if len(n) > 10 {
			n = n[:10]
		}
		if !taken(n) {
			return n
		}
	}
}
