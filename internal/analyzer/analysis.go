package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/v0xg/frontend-tester/internal/extract"
)

// PageAnalysis is the combined result of analyzing one page. Error is set only
// on records produced for pages the crawler failed to load.
type PageAnalysis struct {
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	Error         string           `json:"error,omitempty"`
	BasicElements extract.Elements `json:"basic_elements"`
	AIAnalysis    map[string]any   `json:"ai_analysis"`
}

// UserFlow is one entry of ai_analysis.user_flows.
type UserFlow struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

// ErrorRecord builds the record stored for a page that could not be analyzed.
func ErrorRecord(url string, err error) *PageAnalysis {
	return &PageAnalysis{
		URL:           url,
		Error:         err.Error(),
		BasicElements: extract.Elements{},
		AIAnalysis:    map[string]any{"error": err.Error()},
	}
}

// AIError returns the error string the AI step reported, if any.
func (p *PageAnalysis) AIError() string {
	if p == nil || p.AIAnalysis == nil {
		return ""
	}
	s, _ := p.AIAnalysis["error"].(string)
	return s
}

// UserFlows reads ai_analysis.user_flows. Entries that are not objects are
// skipped; a missing name is left empty for the caller to fill.
func (p *PageAnalysis) UserFlows() []UserFlow {
	if p == nil || p.AIAnalysis == nil {
		return nil
	}
	raw, ok := p.AIAnalysis["user_flows"].([]any)
	if !ok {
		return nil
	}

	flows := make([]UserFlow, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var flow UserFlow
		flow.Name, _ = obj["name"].(string)
		if steps, ok := obj["steps"].([]any); ok {
			for _, s := range steps {
				flow.Steps = append(flow.Steps, fmt.Sprint(s))
			}
		}
		flows = append(flows, flow)
	}
	return flows
}

// SaveAnalysis writes v as 2-space indented JSON, creating parent directories.
func SaveAnalysis(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}
	return nil
}

// LoadAnalysis reads a single-page analysis written by SaveAnalysis.
func LoadAnalysis(path string) (*PageAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}

	var analysis PageAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis %s: %w", path, err)
	}
	if analysis.BasicElements == nil {
		analysis.BasicElements = extract.Elements{}
	}
	return &analysis, nil
}
