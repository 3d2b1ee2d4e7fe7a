package source

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jobscout/internal/domain/opportunity"
)

// CryptoJobsList scrapes the cryptojobslist.com board.
type CryptoJobsList struct {
	baseURL     string
	allowedHost string
	logger      *zap.Logger
}

func NewCryptoJobsList(logger *zap.Logger) *CryptoJobsList {
	return NewCryptoJobsListWithBaseURL(logger, "https://cryptojobslist.com")
}

func NewCryptoJobsListWithBaseURL(logger *zap.Logger, baseURL string) *CryptoJobsList {
	s := &CryptoJobsList{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), logger: logger}
	if s.baseURL == "" {
		s.baseURL = "https://cryptojobslist.com"
	}
	s.allowedHost = hostFromBaseURL(s.baseURL, "cryptojobslist.com")
	return s
}

func (s *CryptoJobsList) Name() string { return "cryptojobslist" }

func (s *CryptoJobsList) Discover(ctx context.Context) ([]opportunity.Posting, error) {
	primary, fallback, err := scrapeBoard(ctx, boardScrape{
		allowedHost:      s.allowedHost,
		pageURL:          s.baseURL,
		source:           s.Name(),
		primarySelector:  "article, .job-card, .job-listing, [data-job-id]",
		titleSelector:    "h2, h3, .title, a",
		descSelector:     ".description, p, .summary, .job-description",
		fallbackSelector: `a[href*="/jobs"], a[href*="/job"], a[href*="/position"]`,
		primaryTags:      []string{"crypto", "blockchain", "web3"},
		fallbackTags:     []string{"crypto"},
	})
	if err != nil {
		s.logger.Warn("cryptojobslist fetch failed", zap.Error(err))
		return nil, nil
	}

	out := primary
	if len(out) == 0 {
		out = fallback
	}
	s.logger.Info("source discovered", zap.String("source", s.Name()), zap.Int("count", len(out)))
	return out, nil
}
