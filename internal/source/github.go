package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"jobscout/internal/domain/opportunity"
)

// githubQueries are the fixed issue-search queries run each cycle.
var githubQueries = []string{
	"label:hiring language:javascript",
	"label:hiring language:rust",
	"label:job language:typescript",
	`is:issue is:open "looking for" OR "hiring" node.js`,
	`is:issue is:open "looking for" OR "hiring" solana`,
}

// githubRelevantKeywords is the client-side filter: an issue must mention at
// least one of these to be emitted.
var githubRelevantKeywords = []string{
	"node.js", "next.js", "web3", "rust", "solana", "blockchain", "full-stack", "backend",
}

// GitHub searches the issue-search API for hiring posts.
type GitHub struct {
	client  *gh.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewGitHub(logger *zap.Logger, token string) *GitHub {
	hc := &http.Client{Timeout: requestTimeout}
	if token != "" {
		hc = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		hc.Timeout = requestTimeout
	}
	return NewGitHubWithClient(logger, gh.NewClient(hc))
}

// NewGitHubWithClient allows tests to point the adapter at a stub API.
func NewGitHubWithClient(logger *zap.Logger, client *gh.Client) *GitHub {
	return &GitHub{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger,
	}
}

func (s *GitHub) Name() string { return "github" }

func (s *GitHub) Discover(ctx context.Context) ([]opportunity.Posting, error) {
	out := make([]opportunity.Posting, 0)

	for _, query := range githubQueries {
		if err := s.limiter.Wait(ctx); err != nil {
			return out, nil
		}

		result, _, err := s.client.Search.Issues(ctx, query, &gh.SearchOptions{
			Sort:        "updated",
			ListOptions: gh.ListOptions{PerPage: 10},
		})
		if err != nil {
			if isRateLimited(err) {
				// Out of quota for this cycle; keep what we have.
				s.logger.Warn("github rate limited, abandoning remaining queries",
					zap.String("query", query))
				break
			}
			s.logger.Warn("github query failed", zap.String("query", query), zap.Error(err))
			continue
		}

		for _, item := range result.Issues {
			title := item.GetTitle()
			body := item.GetBody()
			url := item.GetHTMLURL()
			if title == "" || url == "" {
				continue
			}
			if !mentionsRelevantKeyword(title + " " + body) {
				continue
			}

			desc := truncateRunes(body, maxDescriptionLen)
			if desc == "" {
				desc = title
			}
			var postedAt *time.Time
			if created := item.GetCreatedAt(); !created.IsZero() {
				t := created.Time.UTC()
				postedAt = &t
			}

			out = append(out, opportunity.Posting{
				Title:       fmt.Sprintf("%s (%s)", title, repoFromAPIURL(item.GetRepositoryURL())),
				Description: desc,
				Source:      s.Name(),
				URL:         url,
				PostedAt:    postedAt,
				Tags:        []string{"github", "open-source"},
			})
		}
	}

	s.logger.Info("source discovered", zap.String("source", s.Name()), zap.Int("count", len(out)))
	return out, nil
}

func isRateLimited(err error) bool {
	var rl *gh.RateLimitError
	var abuse *gh.AbuseRateLimitError
	return errors.As(err, &rl) || errors.As(err, &abuse)
}

func mentionsRelevantKeyword(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range githubRelevantKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func repoFromAPIURL(apiURL string) string {
	parts := strings.Split(strings.TrimSuffix(apiURL, "/"), "/")
	if len(parts) < 2 {
		return apiURL
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
