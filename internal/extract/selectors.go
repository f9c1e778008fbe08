package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// SelectorKind identifies how a candidate selector locates its element.
type SelectorKind string

const (
	SelectorID          SelectorKind = "id"
	SelectorTestID      SelectorKind = "data-testid"
	SelectorName        SelectorKind = "name"
	SelectorPlaceholder SelectorKind = "placeholder"
	SelectorText        SelectorKind = "text"
	SelectorAriaLabel   SelectorKind = "aria-label"
)

// SelectorCandidate is one way to target an element.
type SelectorCandidate struct {
	Kind  SelectorKind `json:"type"`
	Value string       `json:"value"`
}

// SelectorInfo bundles an element with its selector candidates, most stable first.
type SelectorInfo struct {
	Tag        string              `json:"tag"`
	Text       string              `json:"text"`
	Selectors  []SelectorCandidate `json:"selectors"`
	Attributes Element             `json:"attributes"`
}

// Scope limits which elements ExtractForSelectors considers.
type Scope string

const (
	ScopeAll         Scope = "all"
	ScopeInteractive Scope = "interactive"
	ScopeForms       Scope = "forms"
)

// ParseScope validates a scope name.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeAll, ScopeInteractive, ScopeForms:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown selector scope %q (supported: all, interactive, forms)", s)
}

// CreateSelectorInfo builds the candidate list for one element in priority
// order: id, data-testid, name, input placeholder, text (buttons and links
// only), aria-label.
func CreateSelectorInfo(s *goquery.Selection) SelectorInfo {
	info := ElementInfo(s)
	selectors := []SelectorCandidate{}

	if info.ID != "" {
		selectors = append(selectors, SelectorCandidate{SelectorID, "#" + info.ID})
	}
	if info.DataTestID != "" {
		selectors = append(selectors, SelectorCandidate{SelectorTestID, fmt.Sprintf("[data-testid='%s']", info.DataTestID)})
	}
	if info.Name != "" {
		selectors = append(selectors, SelectorCandidate{SelectorName, fmt.Sprintf("[name='%s']", info.Name)})
	}
	if info.Tag == "input" && info.Placeholder != "" {
		selectors = append(selectors, SelectorCandidate{SelectorPlaceholder, fmt.Sprintf("input[placeholder='%s']", info.Placeholder)})
	}
	if info.Text != "" && (info.Tag == "button" || info.Tag == "a") {
		selectors = append(selectors, SelectorCandidate{SelectorText, fmt.Sprintf("text='%s'", info.Text)})
	}
	if info.AriaLabel != "" {
		selectors = append(selectors, SelectorCandidate{SelectorAriaLabel, fmt.Sprintf("[aria-label='%s']", info.AriaLabel)})
	}

	return SelectorInfo{
		Tag:        info.Tag,
		Text:       info.Text,
		Selectors:  selectors,
		Attributes: info,
	}
}

// ExtractForSelectors returns selector info for the elements in scope:
// interactive controls in document order, then forms.
func ExtractForSelectors(htmlContent string, scope Scope) []SelectorInfo {
	infos := []SelectorInfo{}

	doc, err := parse(htmlContent)
	if err != nil {
		return infos
	}

	if scope == ScopeAll || scope == ScopeInteractive {
		doc.Find("button, a, input, select, textarea").Each(func(_ int, s *goquery.Selection) {
			infos = append(infos, CreateSelectorInfo(s))
		})
	}
	if scope == ScopeAll || scope == ScopeForms {
		doc.Find("form").Each(func(_ int, s *goquery.Selection) {
			infos = append(infos, CreateSelectorInfo(s))
		})
	}
	return infos
}
