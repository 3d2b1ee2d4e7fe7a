// Package scoring is the deterministic rule-based relevance engine. It is
// pure and total: malformed input is coerced, never rejected.
package scoring

import (
	"fmt"
	"strings"

	"jobscout/internal/domain/opportunity"
)

const (
	// ScoreThreshold is the minimum clamped score for a posting to be worth
	// applying to. The discovery orchestrator uses the same constant as its
	// storage gate; keep them unified.
	ScoreThreshold = 40

	// NotifyThreshold marks a posting as an excellent match and triggers an
	// outbound notification after persistence.
	NotifyThreshold = 70

	negativePenalty   = 10
	mernStackBonus    = 15
	rustSolanaBonus   = 10
	strongCategoryMin = 15
	maxMatchBonus     = 10
	reasonSkillCap    = 5
)

// Result is the outcome of evaluating one posting.
type Result struct {
	Score         int
	Category      opportunity.Category
	MatchedSkills []string
	MatchReason   string
	ShouldApply   bool
}

// Evaluator scores a posting. Engine is the rule-based implementation; an
// LLM-backed scorer may satisfy the same contract behind configuration.
type Evaluator interface {
	Evaluate(p opportunity.Posting) Result
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate maps posting text to a clamped 0-100 score, a category, the list
// of matched skill keywords, and a human-readable justification.
func (e *Engine) Evaluate(p opportunity.Posting) Result {
	text := strings.ToLower(p.Title + " " + p.Description)

	total := 0
	subtotals := map[opportunity.Category]int{
		opportunity.CategoryMERN:    0,
		opportunity.CategoryBackend: 0,
		opportunity.CategoryCrypto:  0,
		opportunity.CategoryRust:    0,
	}
	matched := make([]string, 0, 16)

	for _, kw := range negativeKeywords {
		if strings.Contains(text, kw) {
			total -= negativePenalty
			break
		}
	}

	for _, entry := range skillTable {
		count := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				count++
				matched = append(matched, kw)
			}
		}
		if count == 0 {
			continue
		}
		bonus := count * 2
		if bonus > maxMatchBonus {
			bonus = maxMatchBonus
		}
		add := entry.Weight + bonus
		total += add
		subtotals[entry.Category] += add
	}

	if strings.Contains(text, "mongo") &&
		strings.Contains(text, "express") &&
		strings.Contains(text, "react") &&
		strings.Contains(text, "node") {
		total += mernStackBonus
		subtotals[opportunity.CategoryMERN] += mernStackBonus
		if !containsString(matched, "mern") {
			matched = append(matched, "mern")
		}
	}

	if subtotals[opportunity.CategoryRust] > 0 &&
		subtotals[opportunity.CategoryCrypto] > 0 &&
		strings.Contains(text, "solana") {
		total += rustSolanaBonus
	}

	category := decideCategory(subtotals)

	total = clamp(total, 0, 100)
	matched = dedupPreservingOrder(matched)

	return Result{
		Score:         total,
		Category:      category,
		MatchedSkills: matched,
		MatchReason:   matchReason(total, matched, category),
		ShouldApply:   total >= ScoreThreshold,
	}
}

func decideCategory(subtotals map[opportunity.Category]int) opportunity.Category {
	maxScore := 0
	for _, v := range subtotals {
		if v > maxScore {
			maxScore = v
		}
	}
	if maxScore == 0 {
		return opportunity.CategoryOther
	}

	category := opportunity.CategoryOther
	switch {
	case subtotals[opportunity.CategoryMERN] >= maxScore:
		category = opportunity.CategoryMERN
	case subtotals[opportunity.CategoryCrypto] >= maxScore:
		if subtotals[opportunity.CategoryRust] > 0 {
			category = opportunity.CategoryRust
		} else {
			category = opportunity.CategoryCrypto
		}
	case subtotals[opportunity.CategoryBackend] >= maxScore:
		category = opportunity.CategoryBackend
	case subtotals[opportunity.CategoryRust] >= maxScore:
		category = opportunity.CategoryRust
	}

	strong := 0
	for _, v := range subtotals {
		if v > strongCategoryMin {
			strong++
		}
	}
	if strong > 1 {
		category = opportunity.CategoryMixed
	}

	return category
}

var categoryNames = map[opportunity.Category]string{
	opportunity.CategoryMERN:    "MERN stack",
	opportunity.CategoryBackend: "Backend development",
	opportunity.CategoryCrypto:  "Crypto/Web3",
	opportunity.CategoryRust:    "Rust/Solana",
	opportunity.CategoryMixed:   "Multiple relevant categories",
	opportunity.CategoryOther:   "General development",
}

func matchReason(score int, matched []string, category opportunity.Category) string {
	if score < 20 {
		return "Low relevance - few matching skills found"
	}

	top := matched
	if len(top) > reasonSkillCap {
		top = top[:reasonSkillCap]
	}
	skills := strings.Join(top, ", ")
	name := categoryNames[category]

	switch {
	case score >= NotifyThreshold:
		return fmt.Sprintf("Excellent match: Strong %s fit with %s", name, skills)
	case score >= 50:
		return fmt.Sprintf("Good match: %s role with %s", name, skills)
	default:
		return fmt.Sprintf("Moderate match: Some relevant skills (%s)", skills)
	}
}

func dedupPreservingOrder(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func containsString(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
