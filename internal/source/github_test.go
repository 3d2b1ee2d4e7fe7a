package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const issueSearchBody = `{
  "total_count": 2,
  "incomplete_results": false,
  "items": [
    {
      "title": "Hiring Rust developer for Solana program",
      "body": "We need an engineer for our on-chain programs",
      "html_url": "https://github.com/acme/jobs/issues/1",
      "repository_url": "https://api.github.com/repos/acme/jobs",
      "created_at": "2026-01-15T10:00:00Z"
    },
    {
      "title": "Fix typo in README",
      "body": "documentation only",
      "html_url": "https://github.com/acme/jobs/issues/2",
      "repository_url": "https://api.github.com/repos/acme/jobs"
    }
  ]
}`

func newStubGitHub(t *testing.T, handler http.HandlerFunc) *GitHub {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	client.BaseURL = base

	s := NewGitHubWithClient(zap.NewNop(), client)
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	return s
}

func TestGitHub_FiltersIrrelevantIssues(t *testing.T) {
	s := newStubGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/search/issues") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(issueSearchBody))
	})

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	// Each query returns the same two issues; only the hiring post mentions
	// a relevant keyword.
	if len(postings) != len(githubQueries) {
		t.Fatalf("postings = %d, want %d", len(postings), len(githubQueries))
	}
	p := postings[0]
	if p.Title != "Hiring Rust developer for Solana program (acme/jobs)" {
		t.Errorf("title = %q", p.Title)
	}
	if p.URL != "https://github.com/acme/jobs/issues/1" {
		t.Errorf("url = %q", p.URL)
	}
	if p.PostedAt == nil {
		t.Error("postedAt should be set from created_at")
	}
}

func TestGitHub_RateLimitKeepsPartialResults(t *testing.T) {
	calls := 0
	s := newStubGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(issueSearchBody))
			return
		}
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "2000000000")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	})

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (remaining queries abandoned)", calls)
	}
	if len(postings) != 1 {
		t.Errorf("postings = %d, want results from the first query kept", len(postings))
	}
}

func TestGitHub_QueryErrorIsIsolated(t *testing.T) {
	calls := 0
	s := newStubGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(issueSearchBody))
	})

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if calls != len(githubQueries) {
		t.Errorf("calls = %d, want all queries attempted", calls)
	}
	if len(postings) != len(githubQueries)-1 {
		t.Errorf("postings = %d, want %d", len(postings), len(githubQueries)-1)
	}
}
