package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/frontend-tester/internal/ai"
	"github.com/v0xg/frontend-tester/internal/analyzer"
	"github.com/v0xg/frontend-tester/internal/extract"
)

// scriptedProvider returns its responses in order and records every request.
type scriptedProvider struct {
	responses []string
	failAt    int // 1-based call that fails; 0 never fails
	requests  []ai.Request
}

func (p *scriptedProvider) Complete(_ context.Context, req ai.Request) (string, error) {
	p.requests = append(p.requests, req)
	n := len(p.requests)
	if n == p.failAt {
		return "", errors.New("401 invalid api key")
	}
	if n > len(p.responses) {
		return "", errors.New("unexpected call")
	}
	return p.responses[n-1], nil
}

const featureResponse = "```gherkin\nFeature: Login\n  Scenario: ok\n    Given I am on the login page\n    When I sign in\n```"

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateCompleteTestSuite_NoFlows(t *testing.T) {
	out := t.TempDir()
	provider := &scriptedProvider{responses: []string{
		"Here is the feature:\n" + featureResponse,
		"```python\nfrom pytest_bdd import given\n```",
	}}
	analysis := &analyzer.PageAnalysis{
		URL:           "https://shop.test/app#!/settings",
		Title:         "Settings",
		BasicElements: extract.Elements{},
		AIAnalysis:    map[string]any{"page_type": "settings"},
	}

	files, err := New(provider).GenerateCompleteTestSuite(context.Background(), "Shop", analysis.URL, analysis, out)
	require.NoError(t, err)

	featurePath := filepath.Join(out, "features", "app__settings.feature")
	stepsPath := filepath.Join(out, "steps", "test_app__settings.py")
	assert.Equal(t, []GeneratedFile{
		{Kind: "feature", Path: featurePath},
		{Kind: "steps", Path: stepsPath},
	}, files)

	assert.Equal(t, "Feature: Login\n  Scenario: ok\n    Given I am on the login page\n    When I sign in", readFile(t, featurePath))
	assert.Equal(t, "from pytest_bdd import given", readFile(t, stepsPath))

	require.Len(t, provider.requests, 2)
	assert.Equal(t, 0.7, provider.requests[0].Temperature)
	assert.Equal(t, 4000, provider.requests[0].MaxTokens)
	assert.Contains(t, provider.requests[0].User, "Page Title: Settings")
	assert.Equal(t, 0.4, provider.requests[1].Temperature)
	assert.Contains(t, provider.requests[1].User, "Given I am on the login page\nWhen I sign in")
}

func TestGenerateCompleteTestSuite_Flows(t *testing.T) {
	out := t.TempDir()
	provider := &scriptedProvider{responses: []string{
		featureResponse,
		"import pytest",
		"Feature: Unnamed\n  Scenario: s\n    Then it works",
		"def test(): pass",
	}}
	analysis := &analyzer.PageAnalysis{
		URL:           "https://shop.test/login",
		BasicElements: extract.Elements{extract.Buttons: {{Tag: "button", Text: "Sign in", Class: []string{}}}},
		AIAnalysis: map[string]any{"user_flows": []any{
			map[string]any{"name": "Login Flow!", "steps": []any{"Enter email"}},
			map[string]any{"steps": []any{}},
		}},
	}

	files, err := New(provider).GenerateCompleteTestSuite(context.Background(), "Shop", analysis.URL, analysis, out)
	require.NoError(t, err)

	var kinds []string
	for _, f := range files {
		kinds = append(kinds, f.Kind)
		assert.FileExists(t, f.Path)
	}
	assert.Equal(t, []string{"feature_login_flow", "steps_login_flow", "feature_flow_2", "steps_flow_2"}, kinds)
	assert.Equal(t, filepath.Join(out, "features", "login_flow.feature"), files[0].Path)
	assert.Equal(t, filepath.Join(out, "steps", "test_flow_2.py"), files[3].Path)

	require.Len(t, provider.requests, 4)
	assert.Equal(t, 0.6, provider.requests[0].Temperature)
	assert.Equal(t, 3000, provider.requests[0].MaxTokens)
	assert.Contains(t, provider.requests[0].User, "User Flow: Login Flow!")
	assert.Contains(t, provider.requests[0].User, "Application: Shop")
	assert.Contains(t, provider.requests[0].User, `"text": "Sign in"`)
	assert.Contains(t, provider.requests[2].User, "User Flow: Flow 2")
}

func TestGenerateCompleteTestSuite_PagePrefixKeepsFlowsApart(t *testing.T) {
	out := t.TempDir()
	provider := &scriptedProvider{responses: []string{
		"Feature: Checkout on cart\n  Scenario: s\n    Given the cart page",
		"cart_steps = 1",
		"Feature: Checkout on payment\n  Scenario: s\n    Given the payment page",
		"payment_steps = 1",
	}}
	g := New(provider, WithPagePrefix())

	var files []GeneratedFile
	for _, url := range []string{"https://shop.test/cart", "https://shop.test/checkout/payment"} {
		analysis := &analyzer.PageAnalysis{
			URL:           url,
			BasicElements: extract.Elements{},
			AIAnalysis: map[string]any{"user_flows": []any{
				map[string]any{"name": "Checkout", "steps": []any{"Pay"}},
			}},
		}
		generated, err := g.GenerateCompleteTestSuite(context.Background(), "Shop", url, analysis, out)
		require.NoError(t, err)
		files = append(files, generated...)
	}

	require.Len(t, files, 4)
	assert.Equal(t, GeneratedFile{Kind: "feature_cart_checkout", Path: filepath.Join(out, "features", "cart_checkout.feature")}, files[0])
	assert.Equal(t, GeneratedFile{Kind: "steps_checkout_payment_checkout", Path: filepath.Join(out, "steps", "test_checkout_payment_checkout.py")}, files[3])
	assert.Contains(t, readFile(t, files[0].Path), "Given the cart page")
	assert.Contains(t, readFile(t, files[2].Path), "Given the payment page")
	assert.Equal(t, "cart_steps = 1", readFile(t, files[1].Path))
	assert.Equal(t, "payment_steps = 1", readFile(t, files[3].Path))
}

func TestGenerateCompleteTestSuite_SkipsStepsWithoutSteps(t *testing.T) {
	out := t.TempDir()
	provider := &scriptedProvider{responses: []string{"Feature: Empty"}}
	analysis := &analyzer.PageAnalysis{URL: "https://shop.test/", BasicElements: extract.Elements{}}

	files, err := New(provider).GenerateCompleteTestSuite(context.Background(), "Shop", analysis.URL, analysis, out)
	require.NoError(t, err)

	assert.Equal(t, []GeneratedFile{{Kind: "feature", Path: filepath.Join(out, "features", "index.feature")}}, files)
	assert.Len(t, provider.requests, 1)
	assert.DirExists(t, filepath.Join(out, "steps"))
}

func TestGenerateCompleteTestSuite_ProviderErrorPropagates(t *testing.T) {
	out := t.TempDir()
	provider := &scriptedProvider{responses: []string{featureResponse}, failAt: 2}
	analysis := &analyzer.PageAnalysis{
		URL:        "https://shop.test/login",
		AIAnalysis: map[string]any{"user_flows": []any{map[string]any{"name": "Login"}}},
	}

	files, err := New(provider).GenerateCompleteTestSuite(context.Background(), "Shop", analysis.URL, analysis, out)
	require.Error(t, err)
	assert.ErrorContains(t, err, "401 invalid api key")
	require.Len(t, files, 1)
	assert.FileExists(t, files[0].Path)
}

func TestGenerateScenariosReturnsRawResponse(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"```gherkin\nFeature: X\n```"}}
	out, err := New(provider).GenerateScenarios(context.Background(), "https://x.test", "X", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "```gherkin\nFeature: X\n```", out)
	assert.Contains(t, provider.requests[0].User, "\"a\": 1")
}

func TestSaveFeatureFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "login.feature")
	require.NoError(t, SaveFeatureFile("Feature: Login", path))
	assert.Equal(t, "Feature: Login", readFile(t, path))

	stepsPath := filepath.Join(t.TempDir(), "steps", "test_login.py")
	require.NoError(t, SaveStepDefinitions("import pytest", stepsPath))
	assert.Equal(t, "import pytest", readFile(t, stepsPath))
}
