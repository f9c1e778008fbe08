package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/frontend-tester/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Name = "shop-tests"
	cfg.TargetURLs = []string{"https://shop.test"}
	cfg.Browser.Browsers = []string{"firefox"}
	cfg.Browser.Headless = false
	cfg.LLM.APIKey = "sk-secret"
	return cfg
}

func TestCreate(t *testing.T) {
	root := t.TempDir()

	dir, err := Create(root, testConfig())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".frontend-tester"), dir)

	for _, sub := range Subdirs {
		assert.DirExists(t, filepath.Join(dir, sub))
	}
	for _, f := range files {
		assert.FileExists(t, filepath.Join(dir, f.path))
	}

	cfgData, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfgData), "name: shop-tests")
	assert.NotContains(t, string(cfgData), "sk-secret")

	feature, err := os.ReadFile(filepath.Join(dir, "features", "example.feature"))
	require.NoError(t, err)
	assert.Contains(t, string(feature), `When I navigate to "https://shop.test"`)

	fixture, err := os.ReadFile(filepath.Join(dir, "support", "browser.py"))
	require.NoError(t, err)
	assert.Contains(t, string(fixture), `"FRONTEND_TESTER_BROWSER", "firefox"`)
	assert.Contains(t, string(fixture), `"FRONTEND_TESTER_HEADLESS", "false"`)
	assert.Contains(t, string(fixture), `VIEWPORT = {"width": 1280, "height": 720}`)

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# Frontend Tester Project: shop-tests")
}

func TestCreateRefusesExistingProject(t *testing.T) {
	root := t.TempDir()
	_, err := Create(root, testConfig())
	require.NoError(t, err)

	_, err = Create(root, testConfig())
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	_, err := Create(root, testConfig())
	require.NoError(t, err)

	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindRoot(nested)
	require.NoError(t, err)
	want, _ := filepath.Abs(root)
	assert.Equal(t, want, found)

	found, err = FindRoot(root)
	require.NoError(t, err)
	assert.Equal(t, want, found)
}

func TestFindRootNotFound(t *testing.T) {
	_, err := FindRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildPytestCommand(t *testing.T) {
	root := t.TempDir()
	_, err := Create(root, testConfig())
	require.NoError(t, err)

	cmd, err := BuildPytestCommand(root, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".frontend-tester"), cmd.Dir)
	assert.Equal(t, []string{"pytest", "features", "-v"}, cmd.Args)
	assert.Empty(t, cmd.Env)

	cmd, err = BuildPytestCommand(root, RunOptions{
		Feature:  "example.feature",
		Tag:      "@smoke",
		Browser:  "webkit",
		Headed:   true,
		Parallel: 4,
		Verbose:  true,
		HTML:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"pytest", "features/example.feature", "-m", "smoke", "-vv",
		"-n", "4", "--html", "reports/report.html", "--self-contained-html",
	}, cmd.Args)
	assert.Equal(t, []string{"FRONTEND_TESTER_BROWSER=webkit", "FRONTEND_TESTER_HEADLESS=false"}, cmd.Env)
}

func TestBuildPytestCommandErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".frontend-tester", "features"), 0o755))

	_, err := BuildPytestCommand(root, RunOptions{})
	assert.ErrorIs(t, err, ErrNoFeatures)

	_, err = Create(root, testConfig())
	require.NoError(t, err)
	_, err = BuildPytestCommand(root, RunOptions{Feature: "missing.feature"})
	assert.ErrorContains(t, err, "feature file not found")
}
