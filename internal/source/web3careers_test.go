package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const boardPage = `<!DOCTYPE html>
<html><body>
<article>
  <h2>Senior Solidity Engineer</h2>
  <p>Build smart contracts in Solidity for our DeFi protocol</p>
  <a href="/jobs/solidity-engineer">View</a>
</article>
<article>
  <h2>QA</h2>
  <p>Short title card that must be skipped</p>
  <a href="/jobs/qa">View</a>
</article>
</body></html>`

const linkOnlyPage = `<!DOCTYPE html>
<html><body>
<ul>
  <li><a href="/jobs/rust-core-engineer">Rust Core Engineer at ChainCo</a></li>
  <li><a href="/about">About</a></li>
</ul>
</body></html>`

func serveHTML(t *testing.T, page string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeb3Careers_ParsesJobCards(t *testing.T) {
	srv := serveHTML(t, boardPage)
	s := NewWeb3CareersWithBaseURL(zap.NewNop(), srv.URL, false)

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("postings = %d, want 1 (short-title card skipped)", len(postings))
	}

	p := postings[0]
	if p.Title != "Senior Solidity Engineer" {
		t.Errorf("title = %q", p.Title)
	}
	if !strings.Contains(p.Description, "smart contracts") {
		t.Errorf("description = %q", p.Description)
	}
	if p.URL != srv.URL+"/jobs/solidity-engineer" {
		t.Errorf("url = %q, want absolute job link", p.URL)
	}
	if p.Source != "web3.careers" {
		t.Errorf("source = %q", p.Source)
	}
}

func TestWeb3Careers_FallsBackToJobLinks(t *testing.T) {
	srv := serveHTML(t, linkOnlyPage)
	s := NewWeb3CareersWithBaseURL(zap.NewNop(), srv.URL, false)

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("postings = %d, want 1 from fallback links", len(postings))
	}
	if postings[0].Title != "Rust Core Engineer at ChainCo" {
		t.Errorf("title = %q", postings[0].Title)
	}
}

func TestWeb3Careers_ServerErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewWeb3CareersWithBaseURL(zap.NewNop(), srv.URL, false)
	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("adapter should swallow fetch errors, got %v", err)
	}
	if len(postings) != 0 {
		t.Errorf("postings = %d, want 0", len(postings))
	}
}

func TestCryptoJobsList_ParsesJobCards(t *testing.T) {
	srv := serveHTML(t, boardPage)
	s := NewCryptoJobsListWithBaseURL(zap.NewNop(), srv.URL)

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("postings = %d, want 1", len(postings))
	}
	if postings[0].Source != "cryptojobslist" {
		t.Errorf("source = %q", postings[0].Source)
	}
}

func TestCryptoJobs_ParsesJobCards(t *testing.T) {
	page := `<!DOCTYPE html>
<html><body>
<div class="job-item">
  <h3>Blockchain Backend Developer</h3>
  <p>Golang services for an exchange</p>
  <a href="/job/blockchain-backend">Apply</a>
</div>
</body></html>`
	srv := serveHTML(t, page)
	s := NewCryptoJobsWithBaseURL(zap.NewNop(), srv.URL)

	postings, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("postings = %d, want 1", len(postings))
	}
	if postings[0].Title != "Blockchain Backend Developer" {
		t.Errorf("title = %q", postings[0].Title)
	}
}
