package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v0xg/frontend-tester/internal/config"
	"github.com/v0xg/frontend-tester/internal/project"
	"github.com/v0xg/frontend-tester/internal/ui"
	"github.com/v0xg/frontend-tester/internal/urlutil"
)

func newInitCmd() *cobra.Command {
	var (
		name           string
		url            string
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new test repository",
		Long: `Initialize a new test repository in path (default: current directory).

Creates .frontend-tester/ with config.yaml, an example feature, common step
definitions, Playwright fixtures and directories for baselines and reports.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return runInit(cmd.InOrStdin(), target, name, url, nonInteractive)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name")
	cmd.Flags().StringVarP(&url, "url", "u", "", "Target URL to test")
	cmd.Flags().BoolVarP(&nonInteractive, "yes", "y", false, "Skip prompts, use defaults")
	return cmd
}

func runInit(in io.Reader, target, name, url string, nonInteractive bool) error {
	p := ui.Stdout
	if _, err := os.Stat(filepath.Join(target, config.FileName)); err == nil {
		p.Info("Run 'frontend-tester config' to view or edit the configuration")
		return fmt.Errorf("frontend tester project already exists at %s", target)
	}
	if url != "" {
		if err := urlutil.ValidateURL(url); err != nil {
			return err
		}
	}

	p.Header("Frontend Tester - Test Repository Initialization")

	cfg := config.Default()
	if name != "" {
		cfg.Name = name
	}
	if url != "" {
		cfg.TargetURLs = []string{url}
	}
	if !nonInteractive {
		p.Println("\nThis wizard will help you set up a new test repository.\n")
		promptConfig(newPrompter(in, p.Writer()), cfg, name == "", url == "")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.Step("Creating test repository structure")
	dir, err := project.Create(target, cfg)
	if err != nil {
		p.Failed()
		return fmt.Errorf("failed to create test repository: %w", err)
	}
	p.Done("")

	abs, _ := filepath.Abs(target)
	p.Success("Test repository initialized")
	p.Header("Repository Details")
	p.Println("  Name:        %s", cfg.Name)
	p.Println("  Location:    %s", abs)
	p.Println("  Config:      %s", filepath.Join(dir, config.FileName))
	p.Println("  Target URLs: %s", strings.Join(cfg.TargetURLs, ", "))
	p.Println("  Browsers:    %s", strings.Join(cfg.Browser.Browsers, ", "))
	p.Println("  LLM:         %s (%s)", cfg.LLM.Provider, cfg.LLM.Model)

	p.Header("Next Steps")
	p.Println("  1. Set your API key:   frontend-tester config set-key --value sk-...")
	p.Println("  2. Analyze the app:    frontend-tester analyze %s --crawl", cfg.TargetURLs[0])
	p.Println("  3. Generate tests:     frontend-tester generate %s --output-dir %s", cfg.TargetURLs[0], project.DirName)
	p.Println("  4. Run the tests:      frontend-tester run")
	return nil
}

// prompter reads line answers with defaults.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(question, def string) string {
	fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return def
	}
	if answer := strings.TrimSpace(p.in.Text()); answer != "" {
		return answer
	}
	return def
}

func (p *prompter) choose(question string, choices []string, def string) string {
	for {
		answer := p.ask(question, def)
		for _, c := range choices {
			if answer == c {
				return answer
			}
		}
		fmt.Fprintf(p.out, "Please choose one of: %s\n", strings.Join(choices, ", "))
	}
}

func (p *prompter) confirm(question string, def bool) bool {
	d := "y/N"
	if def {
		d = "Y/n"
	}
	switch strings.ToLower(p.ask(question, d)) {
	case "y", "yes", "true", "1":
		return true
	case "n", "no", "false", "0":
		return false
	default:
		return def
	}
}

var browserChoices = map[string][]string{
	"1": {"chromium"},
	"2": {"firefox"},
	"3": {"webkit"},
	"4": {"chromium", "firefox", "webkit"},
}

func promptConfig(p *prompter, cfg *config.Config, askName, askURL bool) {
	if askName {
		cfg.Name = p.ask("Project name", cfg.Name)
	}
	if askURL {
		cfg.TargetURLs = []string{p.ask("Target URL to test", cfg.TargetURLs[0])}
	}

	fmt.Fprintln(p.out, "\nSelect browsers to test:")
	fmt.Fprintln(p.out, "  1. Chromium (Chrome/Edge) - Recommended")
	fmt.Fprintln(p.out, "  2. Firefox")
	fmt.Fprintln(p.out, "  3. WebKit (Safari)")
	fmt.Fprintln(p.out, "  4. All browsers")
	cfg.Browser.Browsers = browserChoices[p.choose("Choice", []string{"1", "2", "3", "4"}, "1")]

	cfg.Browser.Headless = p.confirm("Run browsers in headless mode?", true)
	cfg.Docker.Enabled = p.confirm("Use Docker for browser testing? (recommended for CI/CD)", false)

	fmt.Fprintln(p.out, "\nSelect LLM provider for AI features:")
	fmt.Fprintln(p.out, "  1. OpenAI (GPT-4)")
	fmt.Fprintln(p.out, "  2. Anthropic (Claude)")
	fmt.Fprintln(p.out, "  3. Google (Gemini)")
	fmt.Fprintln(p.out, "  4. Ollama (local)")
	switch p.choose("Choice", []string{"1", "2", "3", "4"}, "1") {
	case "2":
		cfg.LLM.Provider, cfg.LLM.Model = "anthropic", "claude-sonnet-4-20250514"
	case "3":
		cfg.LLM.Provider, cfg.LLM.Model = "gemini", "gemini-1.5-flash"
	case "4":
		cfg.LLM.Provider, cfg.LLM.Model = "ollama", "llama3"
	default:
		cfg.LLM.Provider, cfg.LLM.Model = "openai", "gpt-4"
	}
}
