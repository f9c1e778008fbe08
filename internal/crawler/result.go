package crawler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/v0xg/frontend-tester/internal/analyzer"
)

// CrawlResult maps URLs to their analyses, keeping analysis order. It
// marshals to a JSON object whose keys appear in that order.
type CrawlResult struct {
	urls  []string
	pages map[string]*analyzer.PageAnalysis
}

// NewCrawlResult returns an empty result.
func NewCrawlResult() *CrawlResult {
	return &CrawlResult{pages: make(map[string]*analyzer.PageAnalysis)}
}

// Set stores the analysis for url. Re-setting a URL keeps its position.
func (r *CrawlResult) Set(url string, analysis *analyzer.PageAnalysis) {
	if _, ok := r.pages[url]; !ok {
		r.urls = append(r.urls, url)
	}
	r.pages[url] = analysis
}

// Get returns the analysis stored for url.
func (r *CrawlResult) Get(url string) (*analyzer.PageAnalysis, bool) {
	a, ok := r.pages[url]
	return a, ok
}

// URLs returns the URLs in insertion order.
func (r *CrawlResult) URLs() []string {
	return append([]string(nil), r.urls...)
}

// Len returns the number of pages.
func (r *CrawlResult) Len() int {
	return len(r.urls)
}

// Failed returns how many pages hold an error record.
func (r *CrawlResult) Failed() int {
	n := 0
	for _, a := range r.pages {
		if a.Error != "" {
			n++
		}
	}
	return n
}

func (r *CrawlResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, url := range r.urls {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(url)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.pages[url])
		if err != nil {
			return nil, fmt.Errorf("marshal analysis for %s: %w", url, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *CrawlResult) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("crawl result: expected object, got %v", tok)
	}

	*r = *NewCrawlResult()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		url, ok := tok.(string)
		if !ok {
			return fmt.Errorf("crawl result: expected string key, got %v", tok)
		}
		var analysis analyzer.PageAnalysis
		if err := dec.Decode(&analysis); err != nil {
			return fmt.Errorf("crawl result %s: %w", url, err)
		}
		r.Set(url, &analysis)
	}

	_, err = dec.Token()
	return err
}
