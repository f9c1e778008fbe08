package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/v0xg/frontend-tester/internal/analyzer"
	"github.com/v0xg/frontend-tester/internal/browser"
	"github.com/v0xg/frontend-tester/internal/config"
	"github.com/v0xg/frontend-tester/internal/crawler"
	"github.com/v0xg/frontend-tester/internal/extract"
	"github.com/v0xg/frontend-tester/internal/ui"
	"github.com/v0xg/frontend-tester/internal/urlutil"
)

const defaultAnalysisPath = "analysis/analysis.json"

type analyzeOptions struct {
	output   string
	browser  string
	headed   bool
	crawl    bool
	maxPages int
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a web page and extract its UI structure",
		Long: `Analyze loads the page in a browser, extracts its interactive elements and
asks the LLM for user flows and test scenarios. With --crawl it follows links
from the start page and analyzes every discovered page.

Example:
  frontend-tester analyze http://localhost:3000
  frontend-tester analyze http://localhost:3000 --crawl --max-pages 20
  frontend-tester analyze http://localhost:3000 --output analysis.json
  frontend-tester analyze http://localhost:3000 --browser firefox --headed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], opts, cmd.Flags().Changed("max-pages"))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (single page) or directory (crawl)")
	cmd.Flags().StringVarP(&opts.browser, "browser", "b", "", "Browser to use (default: first configured browser)")
	cmd.Flags().BoolVar(&opts.headed, "headed", false, "Run browser in headed mode")
	cmd.Flags().BoolVarP(&opts.crawl, "crawl", "c", false, "Crawl and analyze all linked pages")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", config.DefaultCrawlMaxPages, "Maximum pages to crawl")
	return cmd
}

func runAnalyze(ctx context.Context, url string, opts analyzeOptions, maxPagesSet bool) error {
	if err := urlutil.ValidateURL(url); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !maxPagesSet {
		opts.maxPages = cfg.Crawl.MaxPages
	}

	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	p := ui.Stdout
	p.Info("Analyzing page: %s", url)
	p.Info("Using LLM: %s/%s", cfg.LLM.Provider, cfg.LLM.Model)

	sess, err := openSession(ctx, browserOptions(cfg, opts.browser, opts.headed))
	if err != nil {
		return err
	}
	defer sess.Close()

	a := analyzer.New(provider)
	if opts.crawl {
		err = crawlSite(ctx, cfg, sess, a, url, opts)
	} else {
		err = analyzeSingle(ctx, sess, a, url, opts.output)
	}
	if err != nil {
		return err
	}

	p.Success("Analysis complete!")
	return nil
}

func analyzeSingle(ctx context.Context, sess *session, a *analyzer.Analyzer, url, output string) error {
	p := ui.Stdout
	if err := sess.loadPage(ctx, url); err != nil {
		return err
	}

	p.Step("Analyzing page structure")
	analysis, err := a.AnalyzePage(ctx, sess.page)
	if err != nil {
		p.Failed()
		return fmt.Errorf("analysis failed: %w", err)
	}
	p.Done(fmt.Sprintf("%d elements", analysis.BasicElements.Count()))

	printAnalysisSummary(analysis)

	if output == "" {
		output = defaultAnalysisPath
	}
	if err := analyzer.SaveAnalysis(analysis, output); err != nil {
		return err
	}
	p.Success("Analysis saved to: %s", output)
	return nil
}

func printAnalysisSummary(analysis *analyzer.PageAnalysis) {
	p := ui.Stdout
	p.Header("Analysis Results")
	p.Println("URL:   %s", analysis.URL)
	p.Println("Title: %s", analysis.Title)

	p.Header("Detected Elements")
	for _, c := range extract.Categories {
		if n := len(analysis.BasicElements[c]); n > 0 {
			p.Println("  • %s: %d", capitalize(string(c)), n)
		}
	}

	if msg := analysis.AIError(); msg != "" {
		p.Error("AI analysis error: %s", msg)
		return
	}

	p.Header("AI Analysis")
	if flows := analysis.UserFlows(); len(flows) > 0 {
		p.Println("  • User Flows: %d", len(flows))
		for _, flow := range flows[:min(3, len(flows))] {
			name := flow.Name
			if name == "" {
				name = "Unnamed flow"
			}
			p.Println("    - %s", name)
		}
	}
	for _, key := range []string{"interactive_elements", "forms"} {
		if items, ok := analysis.AIAnalysis[key].([]any); ok && len(items) > 0 {
			p.Println("  • %s: %d", capitalize(strings.ReplaceAll(key, "_", " ")), len(items))
		}
	}
}

// newCrawler builds the site crawler. Its navigations use
// crawler.DefaultNavigationTimeout; browser.timeout is left to the generated
// test project.
func newCrawler(cfg *config.Config, page browser.Page, a crawler.PageAnalyzer) *crawler.Crawler {
	return crawler.New(page, a, crawler.WithRateLimit(cfg.Crawl.RequestsPerSecond))
}

func crawlSite(ctx context.Context, cfg *config.Config, sess *session, a *analyzer.Analyzer, url string, opts analyzeOptions) error {
	p := ui.Stdout
	p.Info("Crawling website (max %d pages)...", opts.maxPages)

	c := newCrawler(cfg, sess.page, a)

	var bar *progressbar.ProgressBar
	progress := func(index, total int, pageURL, status string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("Analyzing pages"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Describe(truncate(status, 40))
		_ = bar.Add(1)
		log.Debug().Int("page", index).Int("total", total).Str("url", pageURL).Str("status", status).Msg("Page analyzed")
	}

	results, err := c.CrawlAndAnalyze(ctx, url, opts.maxPages, cfg.Crawl.SameOriginOnly, progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	p.Header(fmt.Sprintf("Crawl Results: %d pages analyzed", results.Len()))
	for _, pageURL := range results.URLs() {
		analysis, _ := results.Get(pageURL)
		if analysis.Error != "" {
			p.Error("Error analyzing %s", pageURL)
			continue
		}
		title := analysis.Title
		if title == "" {
			title = "Untitled"
		}
		p.Success("%s - %s", title, pageURL)
	}

	outDir := crawlOutputDir(opts.output)
	for _, pageURL := range results.URLs() {
		analysis, _ := results.Get(pageURL)
		path := filepath.Join(outDir, urlutil.PageSlug(pageURL)+".json")
		if err := analyzer.SaveAnalysis(analysis, path); err != nil {
			return err
		}
	}
	if err := analyzer.SaveAnalysis(results, filepath.Join(outDir, "all_pages.json")); err != nil {
		return err
	}

	p.Success("Analyses saved to: %s/", outDir)
	p.Info("  • Individual pages: %d files", results.Len())
	p.Info("  • Combined analysis: all_pages.json")
	return nil
}

// crawlOutputDir treats a .json output as a file whose directory receives the
// crawl, and anything else as the directory itself.
func crawlOutputDir(output string) string {
	switch {
	case output == "":
		return filepath.Dir(defaultAnalysisPath)
	case strings.EqualFold(filepath.Ext(output), ".json"):
		return filepath.Dir(output)
	default:
		return output
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

