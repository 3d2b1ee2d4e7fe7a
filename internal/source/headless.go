package source

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"jobscout/internal/domain/opportunity"
)

// harvestJobLinksHeadless renders a JS-only board in headless Chrome and
// pulls job links out of the hydrated DOM. Used when the plain fetch yields
// nothing and the deployment has opted in to a local Chrome dependency.
func harvestJobLinksHeadless(ctx context.Context, baseURL, sourceName string) ([]opportunity.Posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var pairs [][]string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(baseURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('a[href]'))
			.filter(a => { const h = a.getAttribute('href'); return h && (h.includes('/jobs') || h.includes('/job')); })
			.map(a => [a.getAttribute('href'), a.textContent.trim()])`, &pairs),
	)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(baseURL, "/")
	seen := map[string]struct{}{}
	out := make([]opportunity.Posting, 0, len(pairs))

	for _, p := range pairs {
		if len(p) != 2 {
			continue
		}
		href := strings.TrimSpace(p[0])
		title := strings.TrimSpace(p[1])
		if href == "" || len(title) <= fallbackMinTitleLen {
			continue
		}
		if strings.HasPrefix(href, "/") {
			href = base + href
		}
		if !absoluteURL(href) {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}
		out = append(out, opportunity.Posting{
			Title:       title,
			Description: title,
			Source:      sourceName,
			URL:         href,
			Tags:        []string{"web3"},
		})
	}

	return out, nil
}
