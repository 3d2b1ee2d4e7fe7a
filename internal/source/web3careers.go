package source

import (
	"context"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"jobscout/internal/domain/opportunity"
)

// Web3Careers scrapes the web3.careers public board.
type Web3Careers struct {
	baseURL     string
	allowedHost string
	headless    bool
	logger      *zap.Logger
}

func NewWeb3Careers(logger *zap.Logger, headless bool) *Web3Careers {
	return NewWeb3CareersWithBaseURL(logger, "https://web3.careers", headless)
}

func NewWeb3CareersWithBaseURL(logger *zap.Logger, baseURL string, headless bool) *Web3Careers {
	s := &Web3Careers{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), headless: headless, logger: logger}
	if s.baseURL == "" {
		s.baseURL = "https://web3.careers"
	}
	s.allowedHost = hostFromBaseURL(s.baseURL, "web3.careers")
	return s
}

func (s *Web3Careers) Name() string { return "web3.careers" }

func (s *Web3Careers) Discover(ctx context.Context) ([]opportunity.Posting, error) {
	primary, fallback, err := scrapeBoard(ctx, boardScrape{
		allowedHost:       s.allowedHost,
		pageURL:           s.baseURL,
		source:            s.Name(),
		primarySelector:   "article, .job-listing, [data-job-id]",
		titleSelector:     "h2, h3, .title, a",
		descSelector:      ".description, p, .summary",
		fallbackSelector:  `a[href*="/jobs"], a[href*="/job"]`,
		primaryTags:       []string{"web3", "blockchain"},
		fallbackTags:      []string{"web3"},
	})
	if err != nil {
		s.logger.Warn("web3.careers fetch failed", zap.Error(err))
		if s.headless {
			return s.discoverHeadless(ctx)
		}
		return nil, nil
	}

	out := primary
	if len(out) == 0 {
		out = fallback
	}
	if len(out) == 0 && s.headless {
		return s.discoverHeadless(ctx)
	}

	s.logger.Info("source discovered", zap.String("source", s.Name()), zap.Int("count", len(out)))
	return out, nil
}

func (s *Web3Careers) discoverHeadless(ctx context.Context) ([]opportunity.Posting, error) {
	out, err := harvestJobLinksHeadless(ctx, s.baseURL, s.Name())
	if err != nil {
		s.logger.Warn("web3.careers headless harvest failed", zap.Error(err))
		return nil, nil
	}
	s.logger.Info("source discovered", zap.String("source", s.Name()),
		zap.Int("count", len(out)), zap.Bool("headless", true))
	return out, nil
}

// boardScrape describes one listing-board page: a primary selector set for
// job cards and a fallback link selector used when the primary yields zero.
type boardScrape struct {
	allowedHost      string
	pageURL          string
	source           string
	primarySelector  string
	titleSelector    string
	descSelector     string
	fallbackSelector string
	primaryTags      []string
	fallbackTags     []string
}

func scrapeBoard(ctx context.Context, cfg boardScrape) (primary, fallback []opportunity.Posting, err error) {
	c := colly.NewCollector(
		colly.AllowedDomains(cfg.allowedHost),
	)
	c.SetRequestTimeout(requestTimeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(cfg.primarySelector, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.DOM.Find(cfg.titleSelector).First().Text())
		href, _ := e.DOM.Find("a").First().Attr("href")
		full := e.Request.AbsoluteURL(strings.TrimSpace(href))
		desc := strings.TrimSpace(e.DOM.Find(cfg.descSelector).Text())
		if desc == "" {
			desc = title
		}
		if len(title) <= minTitleLen || !absoluteURL(full) {
			return
		}
		primary = append(primary, opportunity.Posting{
			Title:       title,
			Description: truncateRunes(desc, maxDescriptionLen),
			Source:      cfg.source,
			URL:         full,
			Tags:        cfg.primaryTags,
		})
	})

	if cfg.fallbackSelector != "" {
		c.OnHTML(cfg.fallbackSelector, func(e *colly.HTMLElement) {
			title := strings.TrimSpace(e.Text)
			full := e.Request.AbsoluteURL(strings.TrimSpace(e.Attr("href")))
			if len(title) <= fallbackMinTitleLen || !absoluteURL(full) || strings.Contains(title, "http") {
				return
			}
			fallback = append(fallback, opportunity.Posting{
				Title:       title,
				Description: title,
				Source:      cfg.source,
				URL:         full,
				Tags:        cfg.fallbackTags,
			})
		})
	}

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	if err := c.Visit(cfg.pageURL); err != nil {
		return nil, nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, nil, reqErr
	}
	return primary, fallback, nil
}
