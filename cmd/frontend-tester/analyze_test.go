package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/frontend-tester/internal/analyzer"
	"github.com/v0xg/frontend-tester/internal/browser"
	"github.com/v0xg/frontend-tester/internal/config"
	"github.com/v0xg/frontend-tester/internal/crawler"
)

type recordingPage struct {
	url   string
	gotos []browser.GotoOptions
}

func (p *recordingPage) Goto(_ context.Context, url string, opts browser.GotoOptions) error {
	p.url = url
	p.gotos = append(p.gotos, opts)
	return nil
}

func (p *recordingPage) Content(context.Context) (string, error) { return "<html></html>", nil }
func (p *recordingPage) Title(context.Context) (string, error)   { return "Home", nil }
func (p *recordingPage) URL() string                             { return p.url }
func (p *recordingPage) Close() error                            { return nil }

type titleAnalyzer struct{}

func (titleAnalyzer) AnalyzePage(ctx context.Context, page browser.Page) (*analyzer.PageAnalysis, error) {
	title, _ := page.Title(ctx)
	return &analyzer.PageAnalysis{URL: page.URL(), Title: title}, nil
}

func TestNewCrawlerIgnoresBrowserTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Browser.Timeout = 5000
	page := &recordingPage{}

	result, err := newCrawler(cfg, page, titleAnalyzer{}).
		CrawlAndAnalyze(context.Background(), "https://shop.test/", 1, true, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())

	require.Len(t, page.gotos, 2)
	for _, opts := range page.gotos {
		assert.Equal(t, crawler.DefaultNavigationTimeout, opts.Timeout)
		assert.Equal(t, browser.WaitNetworkIdle, opts.WaitUntil)
	}
}
