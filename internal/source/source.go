// Package source contains the polymorphic listing-site adapters. Each
// adapter fetches postings from one external site and recovers from its own
// failures: a single source's outage never aborts a discovery cycle.
package source

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"jobscout/internal/domain/opportunity"
)

const (
	requestTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 JobscoutBot/1.0"

	// minTitleLen guards against nav links and empty cards scraped as jobs.
	minTitleLen         = 5
	fallbackMinTitleLen = 10

	maxDescriptionLen = 2000
)

// Source is one external listing site. Discover performs network I/O and
// returns whatever postings it could extract; adapters normally swallow
// errors internally and return a partial (possibly empty) slice.
type Source interface {
	Name() string
	Discover(ctx context.Context) ([]opportunity.Posting, error)
}

// Registry is the fixed, ordered set of sources for a deployment. Order is
// the invocation order of a discovery cycle.
type Registry []Source

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func hostFromBaseURL(base, fallback string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return fallback
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

func absoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
