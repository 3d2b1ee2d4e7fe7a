package scoring

import (
	"math/rand"
	"strings"
	"testing"

	"jobscout/internal/domain/opportunity"
)

func TestEvaluate_EmptyInput(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{})
	if res.Score != 0 {
		t.Fatalf("expected score 0 for empty text, got %d", res.Score)
	}
	if res.Category != opportunity.CategoryOther {
		t.Fatalf("expected category other, got %s", res.Category)
	}
	if res.ShouldApply {
		t.Fatalf("expected shouldApply false")
	}
	if len(res.MatchedSkills) != 0 {
		t.Fatalf("expected no matched skills, got %v", res.MatchedSkills)
	}
}

func TestEvaluate_MERNPosting(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{
		Title:       "Senior MERN Developer",
		Description: "Need MongoDB, Express, React, Node.js expert",
	})
	if res.Score < 70 {
		t.Fatalf("expected score >= 70, got %d", res.Score)
	}
	// The nodejs table entry pushes the backend subtotal past the strong
	// threshold too (node.js/node/js), so the mixed override fires.
	if res.Category != opportunity.CategoryMixed {
		t.Fatalf("expected category mixed, got %s", res.Category)
	}
	found := false
	for _, s := range res.MatchedSkills {
		if s == "mern" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected matched skills to include mern, got %v", res.MatchedSkills)
	}
	if !res.ShouldApply {
		t.Fatalf("expected shouldApply true")
	}
	if !strings.HasPrefix(res.MatchReason, "Excellent match") {
		t.Fatalf("expected excellent-match reason, got %q", res.MatchReason)
	}
}

func TestEvaluate_MERNCategoryWins(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{
		Title:       "MERN stack role",
		Description: "mongodb express and react on the frontend",
	})
	if res.Category != opportunity.CategoryMERN {
		t.Fatalf("expected category mern, got %s", res.Category)
	}
}

func TestEvaluate_NegativeOnly(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{
		Title:       "Java Spring Boot developer needed",
		Description: "Spring Boot microservice work",
	})
	if res.Score != 0 {
		t.Fatalf("expected score 0 after clamping penalty, got %d", res.Score)
	}
	if res.Category != opportunity.CategoryOther {
		t.Fatalf("expected category other, got %s", res.Category)
	}
	if res.ShouldApply {
		t.Fatalf("expected shouldApply false")
	}
	if res.MatchReason != "Low relevance - few matching skills found" {
		t.Fatalf("unexpected reason %q", res.MatchReason)
	}
}

func TestEvaluate_NegativeDampensNotZeroes(t *testing.T) {
	withNeg := NewEngine().Evaluate(opportunity.Posting{
		Title:       "Rust and Java engineer",
		Description: "systems work in rust",
	})
	without := NewEngine().Evaluate(opportunity.Posting{
		Title:       "Rust engineer",
		Description: "systems work in rust",
	})
	if withNeg.Score != without.Score-10 {
		t.Fatalf("expected flat -10 penalty: %d vs %d", withNeg.Score, without.Score)
	}
}

func TestEvaluate_MixedCategory(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{
		Title:       "Rust Solana engineer who also ships React frontends",
		Description: "heavy rust, cargo, anchor, solana programs plus react, redux, hooks, next.js",
	})
	if res.Category != opportunity.CategoryMixed {
		t.Fatalf("expected category mixed, got %s (score %d)", res.Category, res.Score)
	}
}

func TestEvaluate_RustSolanaBonus(t *testing.T) {
	with := NewEngine().Evaluate(opportunity.Posting{
		Title: "engineer", Description: "rust work on solana",
	})
	without := NewEngine().Evaluate(opportunity.Posting{
		Title: "engineer", Description: "rust work on ethereum",
	})
	// Both texts hit the rust table and one crypto entry; only the solana
	// text gets the +10 combination bonus on top of the solana entry delta.
	if with.Score <= without.Score {
		t.Fatalf("expected solana text to outscore ethereum text: %d vs %d", with.Score, without.Score)
	}
}

func TestEvaluate_ScoreAlwaysClamped(t *testing.T) {
	huge := strings.Repeat("mern mongodb express react node solana rust crypto blockchain typescript ", 20)
	res := NewEngine().Evaluate(opportunity.Posting{Title: "everything", Description: huge})
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of range: %d", res.Score)
	}
	if res.Score != 100 {
		t.Fatalf("expected saturated score 100, got %d", res.Score)
	}
}

func TestEvaluate_MatchedSkillsDeduplicated(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{
		Title:       "node node node",
		Description: "nodejs node.js node backend",
	})
	seen := map[string]int{}
	for _, s := range res.MatchedSkills {
		seen[s]++
		if seen[s] > 1 {
			t.Fatalf("duplicate matched skill %q in %v", s, res.MatchedSkills)
		}
	}
}

// ShouldApply must agree with the >= ScoreThreshold predicate for arbitrary
// keyword-table subsets; the orchestrator's storage gate relies on it.
func TestEvaluate_ShouldApplyMatchesThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vocab := make([]string, 0, 64)
	for _, entry := range skillTable {
		vocab = append(vocab, entry.Keywords...)
	}
	vocab = append(vocab, negativeKeywords...)

	for i := 0; i < 500; i++ {
		n := rng.Intn(8)
		words := make([]string, 0, n)
		for j := 0; j < n; j++ {
			words = append(words, vocab[rng.Intn(len(vocab))])
		}
		res := NewEngine().Evaluate(opportunity.Posting{Description: strings.Join(words, " ")})
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("score out of range: %d for %v", res.Score, words)
		}
		if res.ShouldApply != (res.Score >= ScoreThreshold) {
			t.Fatalf("shouldApply disagrees with threshold: score=%d shouldApply=%v input=%v",
				res.Score, res.ShouldApply, words)
		}
	}
}

func TestEvaluate_ReasonSkillCap(t *testing.T) {
	res := NewEngine().Evaluate(opportunity.Posting{
		Title:       "full stack role",
		Description: "mongodb express react node typescript graphql postgres redis",
	})
	if res.Score < 20 {
		t.Fatalf("expected a banded reason, score %d", res.Score)
	}
	listed := strings.Count(res.MatchReason, ",")
	if listed > reasonSkillCap {
		t.Fatalf("reason lists more than %d skills: %q", reasonSkillCap, res.MatchReason)
	}
}
