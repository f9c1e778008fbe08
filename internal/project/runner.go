package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoFeatures is returned when the project has no feature files to run.
var ErrNoFeatures = errors.New("no feature files found in .frontend-tester/features/")

// RunOptions selects what `frontend-tester run` passes to pytest.
type RunOptions struct {
	Feature  string
	Tag      string
	Browser  string
	Headed   bool
	Parallel int
	Verbose  bool
	HTML     bool
}

// ReportPath is the HTML report location relative to the project directory.
const ReportPath = "reports/report.html"

// PytestCommand is a pytest invocation to run from Dir.
type PytestCommand struct {
	Dir  string
	Args []string
	Env  []string // KEY=VALUE overrides appended to the inherited environment
}

// BuildPytestCommand checks the project under root and builds the pytest
// command line for opts.
func BuildPytestCommand(root string, opts RunOptions) (*PytestCommand, error) {
	dir := Dir(root)
	featuresDir := filepath.Join(dir, "features")

	matches, _ := filepath.Glob(filepath.Join(featuresDir, "*.feature"))
	if len(matches) == 0 {
		return nil, ErrNoFeatures
	}

	target := "features"
	if opts.Feature != "" {
		if _, err := os.Stat(filepath.Join(featuresDir, opts.Feature)); err != nil {
			return nil, fmt.Errorf("feature file not found: %s", opts.Feature)
		}
		target = "features/" + opts.Feature
	}

	args := []string{"pytest", target}
	if opts.Tag != "" {
		args = append(args, "-m", strings.TrimPrefix(opts.Tag, "@"))
	}
	if opts.Verbose {
		args = append(args, "-vv")
	} else {
		args = append(args, "-v")
	}
	if opts.Parallel > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Parallel))
	}
	if opts.HTML {
		args = append(args, "--html", ReportPath, "--self-contained-html")
	}

	var env []string
	if opts.Browser != "" {
		env = append(env, "FRONTEND_TESTER_BROWSER="+opts.Browser)
	}
	if opts.Headed {
		env = append(env, "FRONTEND_TESTER_HEADLESS=false")
	}

	return &PytestCommand{Dir: dir, Args: args, Env: env}, nil
}
