// Package proposal renders application cover letters from templates. It is
// deliberately deterministic so drafts are reproducible and reviewable.
package proposal

import (
	"fmt"
	"strings"

	"jobscout/internal/domain/opportunity"
)

var (
	mernSkills    = []string{"mern", "mongo", "express", "react", "node"}
	cryptoSkills  = []string{"crypto", "blockchain", "web3", "defi", "solana"}
	rustSkills    = []string{"rust", "solana"}
	backendSkills = []string{"backend", "api", "server"}

	cryptoMatched  = []string{"crypto", "blockchain", "web3"}
	backendMatched = []string{"backend", "node", "typescript"}
)

const defaultHighlight = "Full-stack development with Node.js, Next.js, and modern web technologies"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds a cover letter draft for the posting. matchedSkills comes
// from the scoring result and widens detection beyond the posting text.
func (g *Generator) Generate(title, description string, matchedSkills []string) string {
	text := strings.ToLower(title + " " + description)

	highlights := make([]string, 0, 4)
	if hasAny(text, mernSkills) || matchesAny(matchedSkills, mernSkills) {
		highlights = append(highlights, "MERN stack (MongoDB, Express, React, Node.js)")
	}
	if hasAny(text, cryptoSkills) || matchesAny(matchedSkills, cryptoMatched) {
		highlights = append(highlights, "Web3 and blockchain development")
	}
	if hasAny(text, rustSkills) || matchesAny(matchedSkills, rustSkills) {
		highlights = append(highlights, "Rust and Solana ecosystem")
	}
	if hasAny(text, backendSkills) || matchesAny(matchedSkills, backendMatched) {
		highlights = append(highlights, "Backend development with Node.js and TypeScript")
	}
	if len(highlights) == 0 {
		highlights = append(highlights, defaultHighlight)
	}

	return fmt.Sprintf(
		"I'm interested in the %s position. I have extensive experience with %s. \n\n"+
			"I'm particularly drawn to this opportunity because it aligns with my expertise in building scalable, modern applications. I'm comfortable working with the technologies mentioned and would be excited to contribute to your team.\n\n"+
			"I'd love to discuss how my background in %s can help achieve your project goals.",
		title,
		strings.Join(highlights, ", "),
		strings.ToLower(highlights[0]),
	)
}

// GenerateFor is a convenience wrapper over a persisted row.
func (g *Generator) GenerateFor(row opportunity.Row) string {
	return g.Generate(row.Title, row.Description, row.MatchedSkills)
}

func hasAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func matchesAny(matched []string, keywords []string) bool {
	for _, m := range matched {
		m = strings.ToLower(m)
		for _, kw := range keywords {
			if m == kw {
				return true
			}
		}
	}
	return false
}
