// Package project creates and locates the .frontend-tester test repository.
package project

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/v0xg/frontend-tester/internal/config"
)

// DirName is the directory that marks a project root.
const DirName = ".frontend-tester"

var (
	// ErrAlreadyExists is returned by Create when the project is already initialized.
	ErrAlreadyExists = errors.New("frontend tester project already exists")
	// ErrNotFound is returned by FindRoot when no project encloses the start directory.
	ErrNotFound = errors.New("not in a frontend tester project")
)

// Subdirectories created inside DirName.
var Subdirs = []string{"features", "steps", "support", "baselines", "reports"}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// files maps generated paths, relative to DirName, to their templates.
var files = []struct {
	path     string
	template string
}{
	{"features/example.feature", "example.feature.tmpl"},
	{"steps/__init__.py", "steps_init.py.tmpl"},
	{"steps/common_steps.py", "common_steps.py.tmpl"},
	{"support/__init__.py", "support_init.py.tmpl"},
	{"support/browser.py", "browser.py.tmpl"},
	{"support/conftest.py", "conftest.py.tmpl"},
	{"README.md", "README.md.tmpl"},
}

type templateData struct {
	Name           string
	URL            string
	Browser        string
	Headless       string
	ViewportWidth  int
	ViewportHeight int
	TimeoutMS      int
}

func newTemplateData(cfg *config.Config) templateData {
	data := templateData{
		Name:           cfg.Name,
		URL:            config.DefaultTargetURL,
		Browser:        config.DefaultBrowser,
		Headless:       "true",
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		TimeoutMS:      cfg.Browser.Timeout,
	}
	if len(cfg.TargetURLs) > 0 {
		data.URL = cfg.TargetURLs[0]
	}
	if len(cfg.Browser.Browsers) > 0 {
		data.Browser = cfg.Browser.Browsers[0]
	}
	if !cfg.Browser.Headless {
		data.Headless = "false"
	}
	return data
}

// Dir returns the project directory under root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// Create initializes the project under root: the directory tree, config.yaml
// (without the API key) and the starter files. It returns the project directory.
func Create(root string, cfg *config.Config) (string, error) {
	dir := Dir(root)
	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("%w at %s", ErrAlreadyExists, root)
	}

	for _, sub := range Subdirs {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", sub, err)
		}
	}

	if err := cfg.Save(configPath); err != nil {
		return "", err
	}

	data := newTemplateData(cfg)
	for _, f := range files {
		var sb strings.Builder
		if err := templates.ExecuteTemplate(&sb, f.template, data); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", f.path, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.path), []byte(sb.String()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", f.path, err)
		}
	}
	return dir, nil
}

// FindRoot walks from start up to the filesystem root and returns the first
// directory containing DirName.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
