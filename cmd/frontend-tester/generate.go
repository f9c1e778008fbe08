package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/v0xg/frontend-tester/internal/ai"
	"github.com/v0xg/frontend-tester/internal/analyzer"
	"github.com/v0xg/frontend-tester/internal/config"
	"github.com/v0xg/frontend-tester/internal/crawler"
	"github.com/v0xg/frontend-tester/internal/generator"
	"github.com/v0xg/frontend-tester/internal/ui"
	"github.com/v0xg/frontend-tester/internal/urlutil"
)

type generateOptions struct {
	outputDir    string
	appName      string
	browser      string
	headed       bool
	analysisFile string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <url>",
		Short: "Generate BDD test scenarios from a web page",
		Long: `Generate analyzes the page (or reads an existing analysis) and writes Gherkin
feature files and pytest-bdd step definitions.

--analysis accepts a single-page analysis or the all_pages.json written by
'analyze --crawl'; a crawl yields one suite per successfully analyzed page.

Example:
  frontend-tester generate http://localhost:3000
  frontend-tester generate http://localhost:3000 --output-dir /tmp/tests
  frontend-tester generate http://localhost:3000 --analysis analysis/analysis.json
  frontend-tester generate http://localhost:3000 --app-name "My App" --browser firefox`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", ".", "Output directory for generated tests")
	cmd.Flags().StringVarP(&opts.appName, "app-name", "n", "My App", "Application name")
	cmd.Flags().StringVarP(&opts.browser, "browser", "b", "", "Browser to use (default: first configured browser)")
	cmd.Flags().BoolVar(&opts.headed, "headed", false, "Run browser in headed mode")
	cmd.Flags().StringVarP(&opts.analysisFile, "analysis", "a", "", "Existing analysis file to use")
	return cmd
}

func runGenerate(ctx context.Context, url string, opts generateOptions) error {
	if err := urlutil.ValidateURL(url); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	p := ui.Stdout
	p.Info("Generating tests for: %s", url)
	p.Info("Using LLM: %s/%s", cfg.LLM.Provider, cfg.LLM.Model)
	p.Info("Output directory: %s", opts.outputDir)

	var analyses []*analyzer.PageAnalysis
	if opts.analysisFile != "" && fileExists(opts.analysisFile) {
		p.Info("Loading existing analysis from: %s", opts.analysisFile)
		analyses, err = loadAnalyses(opts.analysisFile)
		if err != nil {
			return err
		}
	} else {
		p.Info("No existing analysis found. Analyzing page...")
		analysis, err := analyzeForGeneration(ctx, provider, cfg, url, opts)
		if err != nil {
			return err
		}
		analyses = []*analyzer.PageAnalysis{analysis}
	}

	var genOpts []generator.Option
	if len(analyses) > 1 {
		genOpts = append(genOpts, generator.WithPagePrefix())
	}
	g := generator.New(provider, genOpts...)
	var files []generator.GeneratedFile
	for _, analysis := range analyses {
		if analysis.Error != "" {
			p.Warn("Skipping %s: %s", analysis.URL, analysis.Error)
			continue
		}
		target := url
		if len(analyses) > 1 && analysis.URL != "" {
			target = analysis.URL
		}

		p.Step("Generating test scenarios for %s", target)
		generated, err := g.GenerateCompleteTestSuite(ctx, opts.appName, target, analysis, opts.outputDir)
		if err != nil {
			p.Failed()
			return fmt.Errorf("test generation failed: %w", err)
		}
		p.Done(fmt.Sprintf("%d files", len(generated)))
		files = append(files, generated...)
	}

	p.Header("Generated Files")
	for _, f := range files {
		p.Println("  • %s: %s", f.Kind, f.Path)
	}

	p.Success("Test generation complete! Generated %d files.", len(files))
	p.Header("Next Steps")
	p.Println("  1. Review generated files in: %s", opts.outputDir)
	p.Println("  2. Customize scenarios as needed")
	p.Println("  3. Run tests with: frontend-tester run")
	return nil
}

func analyzeForGeneration(ctx context.Context, provider ai.Provider, cfg *config.Config, url string, opts generateOptions) (*analyzer.PageAnalysis, error) {
	sess, err := openSession(ctx, browserOptions(cfg, opts.browser, opts.headed))
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.loadPage(ctx, url); err != nil {
		return nil, err
	}

	ui.Stdout.Step("Analyzing page structure")
	analysis, err := analyzer.New(provider).AnalyzePage(ctx, sess.page)
	if err != nil {
		ui.Stdout.Failed()
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	ui.Stdout.Done(fmt.Sprintf("%d elements", analysis.BasicElements.Count()))

	path := filepath.Join(opts.outputDir, "analysis", "analysis.json")
	if err := analyzer.SaveAnalysis(analysis, path); err != nil {
		return nil, err
	}
	ui.Stdout.Success("Analysis saved to: %s", path)
	return analysis, nil
}

// loadAnalyses reads either a single-page analysis or a crawl result keyed by URL.
func loadAnalyses(path string) ([]*analyzer.PageAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse analysis %s: %w", path, err)
	}
	if _, single := probe["url"]; single {
		analysis, err := analyzer.LoadAnalysis(path)
		if err != nil {
			return nil, err
		}
		return []*analyzer.PageAnalysis{analysis}, nil
	}

	result := crawler.NewCrawlResult()
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to parse crawl result %s: %w", path, err)
	}
	analyses := make([]*analyzer.PageAnalysis, 0, result.Len())
	for _, u := range result.URLs() {
		analysis, _ := result.Get(u)
		if analysis.URL == "" {
			analysis.URL = u
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
