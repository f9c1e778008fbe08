// Package crawler discovers the pages of a site by following links from a
// start URL and analyzes each discovered page.
package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/v0xg/frontend-tester/internal/analyzer"
	"github.com/v0xg/frontend-tester/internal/browser"
	"github.com/v0xg/frontend-tester/internal/extract"
	"github.com/v0xg/frontend-tester/internal/urlutil"
)

// DefaultNavigationTimeout bounds each navigation in both crawl phases.
const DefaultNavigationTimeout = 30 * time.Second

// PageAnalyzer analyzes the page currently loaded in the browser.
type PageAnalyzer interface {
	AnalyzePage(ctx context.Context, page browser.Page) (*analyzer.PageAnalysis, error)
}

// ProgressFunc is called after every page of the analysis phase. status is
// the page title, or "Error: <err>" when the page failed.
type ProgressFunc func(index, total int, url, status string)

// Crawler walks a site with a single reused page. It is not safe for
// concurrent use.
type Crawler struct {
	page     browser.Page
	analyzer PageAnalyzer
	limiter  *rate.Limiter

	visited      map[string]bool
	visitedOrder []string
	frontier     []string
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithRateLimit caps navigations per second. Zero or less disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Crawler) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New creates a Crawler that navigates page and analyzes pages with a.
func New(page browser.Page, a PageAnalyzer, opts ...Option) *Crawler {
	c := &Crawler{
		page:     page,
		analyzer: a,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Visited returns the URLs marked visited by the last discovery, in the
// order they were marked.
func (c *Crawler) Visited() []string {
	return append([]string(nil), c.visitedOrder...)
}

// Frontier returns the URLs still queued when the last discovery stopped.
func (c *Crawler) Frontier() []string {
	return append([]string(nil), c.frontier...)
}

// DiscoverURLs crawls breadth-first from startURL and returns the URLs that
// loaded successfully, in visit order. Pages that fail to load are marked
// visited and never retried. With sameOriginOnly, URLs on other origins are
// skipped without being marked visited. Discovery stops when the frontier is
// empty, maxPages URLs have been visited, or ctx is done; only the last case
// returns an error.
func (c *Crawler) DiscoverURLs(ctx context.Context, startURL string, maxPages int, sameOriginOnly bool) ([]string, error) {
	c.visited = make(map[string]bool)
	c.visitedOrder = nil
	c.frontier = []string{startURL}

	startOrigin := urlutil.Origin(startURL)
	var discovered []string

	for len(c.frontier) > 0 && len(c.visitedOrder) < maxPages {
		if err := ctx.Err(); err != nil {
			return discovered, err
		}

		url := c.frontier[0]
		c.frontier = c.frontier[1:]

		if c.visited[url] {
			continue
		}
		if sameOriginOnly && urlutil.Origin(url) != startOrigin {
			log.Debug().Str("url", url).Msg("Skipping cross-origin URL")
			continue
		}

		if err := c.navigate(ctx, url); err != nil {
			if ctx.Err() != nil {
				return discovered, ctx.Err()
			}
			log.Debug().Err(err).Str("url", url).Msg("Discovery navigation failed")
			c.markVisited(url)
			continue
		}

		discovered = append(discovered, url)
		c.markVisited(url)

		content, err := c.page.Content(ctx)
		if err != nil {
			log.Debug().Err(err).Str("url", url).Msg("Failed to read page content")
			continue
		}

		for _, href := range extract.ExtractElements(content).Hrefs() {
			next, ok := nextURL(url, href)
			if !ok || c.visited[next] {
				continue
			}
			c.frontier = append(c.frontier, next)
		}
		log.Debug().Str("url", url).Int("frontier", len(c.frontier)).Msg("Discovered page")
	}

	return discovered, nil
}

// CrawlAndAnalyze discovers URLs, then navigates to and analyzes each one.
// A page that fails in the analysis phase gets an error record and the crawl
// continues. The returned error is non-nil only if ctx is done; the partial
// result is still returned.
func (c *Crawler) CrawlAndAnalyze(ctx context.Context, startURL string, maxPages int, sameOriginOnly bool, progress ProgressFunc) (*CrawlResult, error) {
	result := NewCrawlResult()

	urls, err := c.DiscoverURLs(ctx, startURL, maxPages, sameOriginOnly)
	if err != nil {
		return result, err
	}
	log.Debug().Int("pages", len(urls)).Str("start", startURL).Msg("Discovery finished")

	for i, url := range urls {
		analysis, err := c.analyze(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			log.Warn().Err(err).Str("url", url).Msg("Page analysis failed")
			result.Set(url, analyzer.ErrorRecord(url, err))
			if progress != nil {
				progress(i+1, len(urls), url, fmt.Sprintf("Error: %v", err))
			}
			continue
		}

		result.Set(url, analysis)
		if progress != nil {
			progress(i+1, len(urls), url, analysis.Title)
		}
	}

	return result, nil
}

func (c *Crawler) analyze(ctx context.Context, url string) (*analyzer.PageAnalysis, error) {
	if err := c.navigate(ctx, url); err != nil {
		return nil, err
	}
	return c.analyzer.AnalyzePage(ctx, c.page)
}

func (c *Crawler) navigate(ctx context.Context, url string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return c.page.Goto(ctx, url, browser.GotoOptions{
		WaitUntil: browser.WaitNetworkIdle,
		Timeout:   DefaultNavigationTimeout,
	})
}

func (c *Crawler) markVisited(url string) {
	if !c.visited[url] {
		c.visited[url] = true
		c.visitedOrder = append(c.visitedOrder, url)
	}
}

// nextURL turns an href found on current into a frontier candidate.
// Script and mail links and plain in-page anchors are rejected.
func nextURL(current, href string) (string, bool) {
	if href == "" {
		return "", false
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
		return "", false
	}
	if strings.HasPrefix(href, urlutil.HashRoutePrefix) {
		return urlutil.JoinHashRoute(current, href), true
	}
	if strings.HasPrefix(href, "#") {
		return "", false
	}
	return urlutil.Resolve(current, href), true
}
