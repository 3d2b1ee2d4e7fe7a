package proposal

import (
	"strings"
	"testing"
)

func TestGenerate_MERNHighlight(t *testing.T) {
	g := NewGenerator()

	out := g.Generate("Senior MERN Developer", "MongoDB, Express, React and Node.js product work", nil)

	if !strings.Contains(out, "Senior MERN Developer position") {
		t.Errorf("proposal missing position title:\n%s", out)
	}
	if !strings.Contains(out, "MERN stack (MongoDB, Express, React, Node.js)") {
		t.Errorf("proposal missing MERN highlight:\n%s", out)
	}
	if !strings.Contains(out, "my background in mern stack") {
		t.Errorf("closing line should use first highlight lowercased:\n%s", out)
	}
}

func TestGenerate_MatchedSkillsWidenDetection(t *testing.T) {
	g := NewGenerator()

	// Text alone says nothing about Rust; the scored skills should still
	// pull in the Rust highlight.
	out := g.Generate("Protocol Engineer", "Low-level systems work", []string{"rust"})

	if !strings.Contains(out, "Rust and Solana ecosystem") {
		t.Errorf("matched skills should add Rust highlight:\n%s", out)
	}
}

func TestGenerate_DefaultHighlight(t *testing.T) {
	g := NewGenerator()

	out := g.Generate("Data Entry Clerk", "Spreadsheets", nil)

	if !strings.Contains(out, defaultHighlight) {
		t.Errorf("expected default highlight for unmatched posting:\n%s", out)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator()

	a := g.Generate("Backend API Engineer", "REST server work", []string{"backend"})
	b := g.Generate("Backend API Engineer", "REST server work", []string{"backend"})
	if a != b {
		t.Error("same input should produce identical proposals")
	}
}
