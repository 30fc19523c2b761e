package petname

import "testing"

func TestGenerateProducesValidNickGrammar(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := Generate(func(string) bool { return false })
		if n == "" {
			t.Fatal("expected a non-empty nickname")
		}
		if len(n) > 10 {
			t.Fatalf("nickname %q exceeds 10 characters", n)
		}
		for _, r := range n {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				t.Fatalf("nickname %q contains non-alphanumeric rune %q", n, r)
			}
		}
	}
}

func TestGenerateAvoidsTakenNames(t *testing.T) {
	taken := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := Generate(func(s string) bool { return taken[s] })
		if taken[n] {
			t.Fatalf("generated already-taken nickname %q", n)
		}
		taken[n] = true
	}
}

func TestGenerateFallsBackWhenEveryWordPairIsTaken(t *testing.T) {
	calls := 0
	n := Generate(func(string) bool {
		calls++
		// Reject every adjective+noun candidate (and its digit-suffixed
		// variants: 50 attempts of 11 checks, 550 calls) so Generate must
		// fall through to the guestN fallback, then reject guest0..guest49
		// and accept guest50, the 601st name it tries.
		return calls <= 600
	})
	if n == "" {
		t.Fatal("expected a fallback nickname once every word-pair candidate is exhausted")
	}
}
