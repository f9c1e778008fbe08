// Package analyzer combines deterministic element extraction with an
// LLM-generated description of a page's flows, forms and navigation.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/v0xg/frontend-tester/internal/ai"
	"github.com/v0xg/frontend-tester/internal/browser"
	"github.com/v0xg/frontend-tester/internal/extract"
	"github.com/v0xg/frontend-tester/internal/prompts"
)

const (
	// DefaultMaxHTMLLength caps the HTML sent to the model, in characters.
	DefaultMaxHTMLLength = 8000
	truncationMarker     = "\n... (truncated)"
	analysisTemperature  = 0.3
)

// Analyzer analyzes rendered pages.
type Analyzer struct {
	provider      ai.Provider
	maxHTMLLength int
}

// New creates an Analyzer backed by provider.
func New(provider ai.Provider) *Analyzer {
	return &Analyzer{provider: provider, maxHTMLLength: DefaultMaxHTMLLength}
}

// AnalyzePage reads the current page and returns its elements and AI analysis.
// A failing AI step is recorded in AIAnalysis and does not fail the call;
// only errors reading the page itself are returned.
func (a *Analyzer) AnalyzePage(ctx context.Context, page browser.Page) (*PageAnalysis, error) {
	url := page.URL()

	title, err := page.Title(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read title: %w", err)
	}

	content, err := page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	elements := extract.ExtractElements(content)
	analysis := a.llmAnalyze(ctx, url, title, content)

	return &PageAnalysis{
		URL:           url,
		Title:         title,
		BasicElements: elements,
		AIAnalysis:    analysis,
	}, nil
}

// ExtractElementsForSelector returns selector candidates for the page's
// elements in the given scope.
func (a *Analyzer) ExtractElementsForSelector(ctx context.Context, page browser.Page, scope extract.Scope) ([]extract.SelectorInfo, error) {
	content, err := page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return extract.ExtractForSelectors(content, scope), nil
}

func (a *Analyzer) llmAnalyze(ctx context.Context, url, title, content string) map[string]any {
	userPrompt, err := prompts.Format(prompts.AnalyzeUIUser, map[string]string{
		"URL":   url,
		"Title": title,
		"HTML":  SimplifyHTML(content, a.maxHTMLLength),
	})
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	response, err := a.provider.Complete(ctx, ai.Request{
		System:      prompts.AnalyzeUISystem,
		User:        userPrompt,
		Temperature: analysisTemperature,
	})
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("AI analysis failed")
		return map[string]any{"error": err.Error()}
	}

	analysis, err := ai.ParseJSONObject(response)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("AI analysis is not JSON")
		return map[string]any{
			"raw_response": response,
			"error":        "Failed to parse JSON",
		}
	}
	return analysis
}

// SimplifyHTML strips script, style and noscript elements and comments, then
// truncates the serialized document to maxLength characters. The cut may land
// mid-tag. Unparseable input is truncated as is.
func SimplifyHTML(content string, maxLength int) string {
	simplified := content
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		doc.Find("script, style, noscript").Remove()
		for _, n := range doc.Nodes {
			removeComments(n)
		}
		if out, err := doc.Html(); err == nil {
			simplified = out
		}
	}

	if maxLength <= 0 {
		return simplified
	}
	runes := []rune(simplified)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + truncationMarker
	}
	return simplified
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}
