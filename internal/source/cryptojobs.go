package source

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jobscout/internal/domain/opportunity"
)

// CryptoJobs scrapes the cryptojobs.com board. The site carries its cards
// under loosely named job classes, so the primary selector is wider and no
// fallback pass is attempted.
type CryptoJobs struct {
	baseURL     string
	allowedHost string
	logger      *zap.Logger
}

func NewCryptoJobs(logger *zap.Logger) *CryptoJobs {
	return NewCryptoJobsWithBaseURL(logger, "https://cryptojobs.com")
}

func NewCryptoJobsWithBaseURL(logger *zap.Logger, baseURL string) *CryptoJobs {
	s := &CryptoJobs{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), logger: logger}
	if s.baseURL == "" {
		s.baseURL = "https://cryptojobs.com"
	}
	s.allowedHost = hostFromBaseURL(s.baseURL, "cryptojobs.com")
	return s
}

func (s *CryptoJobs) Name() string { return "cryptojobs" }

func (s *CryptoJobs) Discover(ctx context.Context) ([]opportunity.Posting, error) {
	primary, _, err := scrapeBoard(ctx, boardScrape{
		allowedHost:     s.allowedHost,
		pageURL:         s.baseURL,
		source:          s.Name(),
		primarySelector: `article, .job-item, .job-post, [class*="job"]`,
		titleSelector:   "h2, h3, h4, .title, .job-title, a",
		descSelector:    ".description, .job-description, p",
		primaryTags:     []string{"crypto", "blockchain"},
	})
	if err != nil {
		s.logger.Warn("cryptojobs fetch failed", zap.Error(err))
		return nil, nil
	}
	s.logger.Info("source discovered", zap.String("source", s.Name()), zap.Int("count", len(primary)))
	return primary, nil
}
