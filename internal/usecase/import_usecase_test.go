package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"jobscout/internal/domain/opportunity"
	"jobscout/internal/repository"
	"jobscout/internal/scoring"
)

func newImporter(opps *fakeOpportunityRepo, cache *fakeCache) *Importer {
	return NewImportUsecase(opps, scoring.NewEngine(), cache, zap.NewNop())
}

func TestImportManual_PersistsAndScores(t *testing.T) {
	opps := newFakeOpportunityRepo()
	cache := newFakeCache()
	u := newImporter(opps, cache)

	out, err := u.ImportManual(context.Background(), ManualImportParams{
		Title:       "Senior MERN Developer",
		Description: "MongoDB, Express, React and Node.js product work",
		URL:         "https://example.com/jobs/1",
	})
	if err != nil {
		t.Fatalf("ImportManual: %v", err)
	}
	if out.Score < scoring.ScoreThreshold {
		t.Errorf("score = %d, expected a relevant posting to clear %d", out.Score, scoring.ScoreThreshold)
	}

	row := opps.rows[out.ID]
	if row.Source != "manual" {
		t.Errorf("source = %q, want manual default", row.Source)
	}
	if row.SourceType != opportunity.SourceTypeManual {
		t.Errorf("source type = %q, want manual", row.SourceType)
	}
	if cache.invalidated == 0 {
		t.Error("import should invalidate cached listings")
	}
}

func TestImportManual_KeepsLowScores(t *testing.T) {
	// Discovery gates on score; manual import does not. The user pasted the
	// posting on purpose.
	opps := newFakeOpportunityRepo()
	u := newImporter(opps, newFakeCache())

	out, err := u.ImportManual(context.Background(), ManualImportParams{
		Title:       "Office Manager",
		Description: "Filing and scheduling",
		URL:         "https://example.com/jobs/2",
	})
	if err != nil {
		t.Fatalf("ImportManual: %v", err)
	}
	if _, ok := opps.rows[out.ID]; !ok {
		t.Error("low-scoring manual import should still be persisted")
	}
}

func TestImportManual_RejectsMissingFields(t *testing.T) {
	u := newImporter(newFakeOpportunityRepo(), newFakeCache())

	cases := []ManualImportParams{
		{Description: "d", URL: "u"},
		{Title: "t", URL: "u"},
		{Title: "t", Description: "d"},
	}
	for _, params := range cases {
		if _, err := u.ImportManual(context.Background(), params); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("params %+v: err = %v, want ErrInvalidInput", params, err)
		}
	}
}

func TestImportManual_DuplicateConflicts(t *testing.T) {
	u := newImporter(newFakeOpportunityRepo(), newFakeCache())
	params := ManualImportParams{
		Title:       "Rust Engineer",
		Description: "Solana programs in Rust",
		URL:         "https://example.com/jobs/rust",
	}

	if _, err := u.ImportManual(context.Background(), params); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := u.ImportManual(context.Background(), params); !errors.Is(err, repository.ErrDuplicateOpportunity) {
		t.Fatalf("second import: err = %v, want ErrDuplicateOpportunity", err)
	}
}

func TestImportEmail_MapsSenderToSource(t *testing.T) {
	cases := []struct {
		from string
		want string
	}{
		{"alerts@upwork.com", "Upwork (email)"},
		{"noreply@freelancer.com", "Freelancer (email)"},
		{"jobs@indeed.com", "Indeed (email)"},
		{"digest@naukri.com", "Naukri (email)"},
		{"someone@example.com", "Email: someone@example.com"},
		{"", "email"},
	}

	for _, tc := range cases {
		opps := newFakeOpportunityRepo()
		u := newImporter(opps, newFakeCache())

		out, err := u.ImportEmail(context.Background(), EmailImportParams{
			Subject: "Node.js Backend Developer needed",
			Body:    "We need a Node.js engineer for API work",
			From:    tc.from,
			URL:     "https://example.com/jobs/email",
		})
		if err != nil {
			t.Fatalf("from=%q: %v", tc.from, err)
		}
		if got := opps.rows[out.ID].Source; got != tc.want {
			t.Errorf("from=%q: source = %q, want %q", tc.from, got, tc.want)
		}
	}
}

func TestImportEmail_SynthesizesURLWhenMissing(t *testing.T) {
	opps := newFakeOpportunityRepo()
	u := newImporter(opps, newFakeCache())

	out, err := u.ImportEmail(context.Background(), EmailImportParams{
		Subject: "Backend role",
		Body:    "API work",
	})
	if err != nil {
		t.Fatalf("ImportEmail: %v", err)
	}

	row := opps.rows[out.ID]
	if !strings.HasPrefix(row.URL, "email://") {
		t.Errorf("url = %q, want synthetic email:// url", row.URL)
	}
	if row.SourceType != opportunity.SourceTypeEmail {
		t.Errorf("source type = %q, want email", row.SourceType)
	}

	// Same subject again is the same alert.
	if _, err := u.ImportEmail(context.Background(), EmailImportParams{
		Subject: "Backend role",
		Body:    "API work resent",
	}); !errors.Is(err, repository.ErrDuplicateOpportunity) {
		t.Errorf("resend: err = %v, want ErrDuplicateOpportunity", err)
	}
}

func TestImportEmail_TruncatesLongBody(t *testing.T) {
	opps := newFakeOpportunityRepo()
	u := newImporter(opps, newFakeCache())

	out, err := u.ImportEmail(context.Background(), EmailImportParams{
		Subject: "Backend role with a very long body",
		Body:    strings.Repeat("a", emailBodyLimit+500),
	})
	if err != nil {
		t.Fatalf("ImportEmail: %v", err)
	}
	if got := len(opps.rows[out.ID].Description); got != emailBodyLimit {
		t.Errorf("description length = %d, want %d", got, emailBodyLimit)
	}
}
