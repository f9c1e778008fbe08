package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/frontend-tester/internal/ai"
	"github.com/v0xg/frontend-tester/internal/browser"
	"github.com/v0xg/frontend-tester/internal/extract"
)

type fakePage struct {
	url, title, html string
	contentErr       error
}

func (p *fakePage) Goto(context.Context, string, browser.GotoOptions) error { return nil }
func (p *fakePage) Content(context.Context) (string, error)                 { return p.html, p.contentErr }
func (p *fakePage) Title(context.Context) (string, error)                   { return p.title, nil }
func (p *fakePage) URL() string                                             { return p.url }
func (p *fakePage) Close() error                                            { return nil }

type fakeProvider struct {
	response string
	err      error
	requests []ai.Request
}

func (f *fakeProvider) Complete(_ context.Context, req ai.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.response, f.err
}

const page = `<html><head><title>Login</title><script>var secret = 1;</script><style>p{}</style></head>
<body><!-- hidden note --><form id="login"><input name="email"><button type="submit">Sign in</button></form>
<noscript>enable js</noscript><a href="/help">Help</a></body></html>`

func TestAnalyzePage(t *testing.T) {
	provider := &fakeProvider{response: `{"page_type": "login", "user_flows": [{"name": "Login Flow", "steps": ["Enter email"]}]}`}
	a := New(provider)

	result, err := a.AnalyzePage(context.Background(), &fakePage{url: "https://example.com/login", title: "Login", html: page})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/login", result.URL)
	assert.Equal(t, "Login", result.Title)
	assert.Len(t, result.BasicElements[extract.Buttons], 1)
	assert.Len(t, result.BasicElements[extract.Links], 1)
	assert.Equal(t, "login", result.AIAnalysis["page_type"])

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, 0.3, req.Temperature)
	assert.Contains(t, req.User, "URL: https://example.com/login")
	assert.NotContains(t, req.User, "var secret")
	assert.NotContains(t, req.User, "hidden note")
}

func TestAnalyzePageUnparseableResponse(t *testing.T) {
	a := New(&fakeProvider{response: "This page has a login form."})

	result, err := a.AnalyzePage(context.Background(), &fakePage{url: "https://example.com", html: page})
	require.NoError(t, err)

	assert.Equal(t, "This page has a login form.", result.AIAnalysis["raw_response"])
	assert.Equal(t, "Failed to parse JSON", result.AIAnalysis["error"])
	assert.Len(t, result.BasicElements[extract.Inputs], 1)
}

func TestAnalyzePageArrayResponse(t *testing.T) {
	response := `[{"name": "Login"}, {"name": "Signup"}]`
	a := New(&fakeProvider{response: response})

	result, err := a.AnalyzePage(context.Background(), &fakePage{url: "https://example.com", html: page})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"raw_response": response,
		"error":        "Failed to parse JSON",
	}, result.AIAnalysis)
}

func TestAnalyzePageProviderFailure(t *testing.T) {
	a := New(&fakeProvider{err: errors.New("rate limited")})

	result, err := a.AnalyzePage(context.Background(), &fakePage{url: "https://example.com", html: page})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"error": "rate limited"}, result.AIAnalysis)
	assert.Equal(t, "rate limited", result.AIError())
	assert.NotEmpty(t, result.BasicElements[extract.Forms])
}

func TestAnalyzePageContentError(t *testing.T) {
	a := New(&fakeProvider{})
	_, err := a.AnalyzePage(context.Background(), &fakePage{contentErr: errors.New("target closed")})
	assert.ErrorContains(t, err, "target closed")
}

func TestExtractElementsForSelector(t *testing.T) {
	a := New(&fakeProvider{})
	infos, err := a.ExtractElementsForSelector(context.Background(), &fakePage{html: page}, extract.ScopeForms)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "form", infos[0].Tag)
}

func TestSimplifyHTML(t *testing.T) {
	out := SimplifyHTML(page, DefaultMaxHTMLLength)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<style")
	assert.NotContains(t, out, "<noscript")
	assert.NotContains(t, out, "<!--")
	assert.Contains(t, out, `<form id="login">`)
	assert.False(t, strings.HasSuffix(out, truncationMarker))
}

func TestSimplifyHTMLTruncates(t *testing.T) {
	long := "<p>" + strings.Repeat("é", 100) + "</p>"
	out := SimplifyHTML(long, 20)

	require.True(t, strings.HasSuffix(out, truncationMarker))
	assert.Len(t, []rune(strings.TrimSuffix(out, truncationMarker)), 20)
}

func TestSaveAndLoadAnalysis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "analysis.json")
	original := &PageAnalysis{
		URL:           "https://example.com",
		Title:         "Home",
		BasicElements: extract.ExtractElements(page + `<select name="empty"></select>`),
		AIAnalysis:    map[string]any{"page_type": "home"},
	}
	require.Len(t, original.BasicElements[extract.Selects], 1)

	require.NoError(t, SaveAnalysis(original, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"url\": \"https://example.com\"")

	loaded, err := LoadAnalysis(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"options": []`)
	assert.Equal(t, original, loaded)
}

func TestLoadAnalysisMissingFile(t *testing.T) {
	_, err := LoadAnalysis(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestErrorRecordShape(t *testing.T) {
	data, err := json.Marshal(ErrorRecord("https://example.com/broken", errors.New("timeout")))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"url": "https://example.com/broken",
		"title": "",
		"error": "timeout",
		"basic_elements": {},
		"ai_analysis": {"error": "timeout"}
	}`, string(data))
}

func TestUserFlows(t *testing.T) {
	p := &PageAnalysis{AIAnalysis: map[string]any{
		"user_flows": []any{
			map[string]any{"name": "Checkout", "steps": []any{"Add to cart", "Pay"}},
			"not an object",
			map[string]any{"steps": []any{}},
		},
	}}

	flows := p.UserFlows()
	require.Len(t, flows, 2)
	assert.Equal(t, "Checkout", flows[0].Name)
	assert.Equal(t, []string{"Add to cart", "Pay"}, flows[0].Steps)
	assert.Empty(t, flows[1].Name)

	assert.Nil(t, (&PageAnalysis{AIAnalysis: map[string]any{"error": "x"}}).UserFlows())
}
