package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/v0xg/frontend-tester/internal/project"
	"github.com/v0xg/frontend-tester/internal/ui"
)

func newRunCmd() *cobra.Command {
	var opts project.RunOptions

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Run the BDD tests with pytest-bdd",
		Long: `Run executes the features in .frontend-tester/features with pytest-bdd and
Playwright. pytest's exit code is propagated.

Example:
  frontend-tester run
  frontend-tester run --feature login.feature
  frontend-tester run --tag smoke
  frontend-tester run --parallel 4
  frontend-tester run --headed --html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) == 1 {
				start = args[0]
			}
			opts.Verbose = verbose
			return runTests(cmd.Context(), start, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Feature, "feature", "f", "", "Run a specific feature file")
	cmd.Flags().StringVarP(&opts.Tag, "tag", "t", "", "Run tests with a specific tag (e.g. @smoke)")
	cmd.Flags().StringVarP(&opts.Browser, "browser", "b", "", "Override browser (chromium, firefox, webkit)")
	cmd.Flags().BoolVar(&opts.Headed, "headed", false, "Run in headed mode (show browser window)")
	cmd.Flags().IntVarP(&opts.Parallel, "parallel", "n", 0, "Run tests in parallel (number of workers)")
	cmd.Flags().BoolVar(&opts.HTML, "html", false, "Generate HTML report")
	return cmd
}

func runTests(ctx context.Context, start string, opts project.RunOptions) error {
	p := ui.Stdout
	p.Header("Running Frontend Tests")

	root, err := project.FindRoot(start)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return fmt.Errorf("%w. Run 'frontend-tester init' first", err)
		}
		return err
	}

	pc, err := project.BuildPytestCommand(root, opts)
	if err != nil {
		if errors.Is(err, project.ErrNoFeatures) {
			p.Info("Create feature files or use 'frontend-tester generate' to create them.")
		}
		return err
	}

	reportPath := filepath.Join(pc.Dir, project.ReportPath)
	if opts.HTML {
		p.Info("HTML report will be saved to: %s", reportPath)
	}
	p.Info("Running: %s", strings.Join(pc.Args, " "))
	if len(pc.Env) > 0 {
		p.Info("Environment overrides: %s", strings.Join(pc.Env, " "))
	}
	p.Println("")

	cmd := exec.CommandContext(ctx, pc.Args[0], pc.Args[1:]...)
	cmd.Dir = pc.Dir
	cmd.Env = append(os.Environ(), pc.Env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug().Str("dir", pc.Dir).Strs("args", pc.Args).Msg("Starting pytest")

	err = cmd.Run()
	p.Println("")

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		p.Success("All tests passed!")
		if opts.HTML {
			p.Info("View report: %s", reportPath)
		}
		return nil
	case errors.Is(err, exec.ErrNotFound):
		p.Info("Install the test dependencies: pip install pytest pytest-bdd pytest-playwright")
		return errors.New("pytest not found")
	case ctx.Err() != nil:
		p.Info("Test run interrupted by user")
		return &exitError{code: 130}
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1
		}
		p.Error("Tests failed with exit code %d", code)
		return &exitError{code: code}
	default:
		return fmt.Errorf("failed to run pytest: %w", err)
	}
}
