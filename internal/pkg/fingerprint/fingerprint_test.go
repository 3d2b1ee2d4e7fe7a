package fingerprint

import "testing"

func TestNew_Deterministic(t *testing.T) {
	a := New("https://x.test/1", "Senior MERN Developer")
	b := New("https://x.test/1", "Senior MERN Developer")
	if a != b {
		t.Fatalf("same inputs produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestNew_DistinctByURL(t *testing.T) {
	a := New("https://x.test/1", "Backend Engineer")
	b := New("https://x.test/2", "Backend Engineer")
	if a == b {
		t.Fatalf("different urls produced identical fingerprints")
	}
}

func TestNew_NoNormalization(t *testing.T) {
	a := New("https://x.test/1", "Backend Engineer")
	b := New("https://x.test/1", "Backend Engineer ")
	if a == b {
		t.Fatalf("whitespace variant should change the fingerprint")
	}
	c := New("https://x.test/1?utm_source=feed", "Backend Engineer")
	if a == c {
		t.Fatalf("query-string variant should change the fingerprint")
	}
}
