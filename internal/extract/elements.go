// Package extract pulls interactive elements out of rendered HTML and builds
// selector candidates for them. Everything here is a pure transform over a
// string; the parser is tolerant, so malformed markup never produces an error.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Category names one bucket of the extractor's output.
type Category string

const (
	Buttons   Category = "buttons"
	Links     Category = "links"
	Inputs    Category = "inputs"
	Selects   Category = "selects"
	Textareas Category = "textareas"
	Forms     Category = "forms"
)

// Categories lists every category in output order.
var Categories = []Category{Buttons, Links, Inputs, Selects, Textareas, Forms}

// Element is a capture of one DOM node. Missing attributes are empty strings,
// a missing class attribute is an empty list.
type Element struct {
	Tag         string   `json:"tag"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Class       []string `json:"class"`
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Placeholder string   `json:"placeholder"`
	AriaLabel   string   `json:"aria_label"`
	DataTestID  string   `json:"data_testid"`
	Href        string   `json:"href"`
	Value       string   `json:"value"`
	Options     []Option `json:"options,omitempty"` // selects only
}

// MarshalJSON always writes "options" for selects, as [] when there are none.
func (e Element) MarshalJSON() ([]byte, error) {
	type element Element
	if e.Tag != "select" {
		return json.Marshal(element(e))
	}
	options := e.Options
	if options == nil {
		options = []Option{}
	}
	return json.Marshal(struct {
		element
		Options []Option `json:"options"`
	}{element(e), options})
}

// UnmarshalJSON restores the empty option list of a select.
func (e *Element) UnmarshalJSON(data []byte) error {
	type element Element
	var raw element
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Element(raw)
	if e.Tag == "select" && e.Options == nil {
		e.Options = []Option{}
	}
	return nil
}

// Option is one <option> of a select.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Elements maps each category to its elements in document order.
type Elements map[Category][]Element

// Count returns the total number of elements across all categories.
func (e Elements) Count() int {
	n := 0
	for _, list := range e {
		n += len(list)
	}
	return n
}

// Hrefs returns the href of every extracted link, in document order.
func (e Elements) Hrefs() []string {
	hrefs := make([]string, 0, len(e[Links]))
	for _, link := range e[Links] {
		hrefs = append(hrefs, link.Href)
	}
	return hrefs
}

// isButtonType reports whether an <input> type makes it a button.
func isButtonType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "button", "submit", "reset":
		return true
	}
	return false
}

// ExtractElements categorizes the interactive elements of an HTML document.
// All six categories are always present in the result.
func ExtractElements(htmlContent string) Elements {
	elements := make(Elements, len(Categories))
	for _, c := range Categories {
		elements[c] = []Element{}
	}

	doc, err := parse(htmlContent)
	if err != nil {
		return elements
	}

	doc.Find("button, input").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "button" {
			elements[Buttons] = append(elements[Buttons], ElementInfo(s))
			return
		}
		if isButtonType(attr(s, "type")) {
			elements[Buttons] = append(elements[Buttons], ElementInfo(s))
		} else {
			elements[Inputs] = append(elements[Inputs], ElementInfo(s))
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		elements[Links] = append(elements[Links], ElementInfo(s))
	})

	doc.Find("select").Each(func(_ int, s *goquery.Selection) {
		info := ElementInfo(s)
		info.Options = []Option{}
		s.Find("option").Each(func(_ int, opt *goquery.Selection) {
			info.Options = append(info.Options, Option{
				Value: attr(opt, "value"),
				Text:  strippedText(opt),
			})
		})
		elements[Selects] = append(elements[Selects], info)
	})

	doc.Find("textarea").Each(func(_ int, s *goquery.Selection) {
		elements[Textareas] = append(elements[Textareas], ElementInfo(s))
	})

	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		elements[Forms] = append(elements[Forms], ElementInfo(s))
	})

	return elements
}

// ElementInfo captures the attributes of a single element.
func ElementInfo(s *goquery.Selection) Element {
	return Element{
		Tag:         goquery.NodeName(s),
		ID:          attr(s, "id"),
		Name:        attr(s, "name"),
		Class:       classList(s),
		Type:        attr(s, "type"),
		Text:        strippedText(s),
		Placeholder: attr(s, "placeholder"),
		AriaLabel:   attr(s, "aria-label"),
		DataTestID:  attr(s, "data-testid"),
		Href:        attr(s, "href"),
		Value:       attr(s, "value"),
	}
}

func parse(htmlContent string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}

func classList(s *goquery.Selection) []string {
	classes := strings.Fields(attr(s, "class"))
	if classes == nil {
		return []string{}
	}
	return classes
}

// strippedText concatenates the element's text nodes, each trimmed of
// surrounding whitespace, with no separator.
func strippedText(s *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return sb.String()
}
