// Package prompts holds the LLM prompt templates. User prompts use
// text/template placeholders ({{.URL}}, {{.Title}}, ...) filled by Format.
package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// Format renders tmpl with values. A placeholder with no value renders empty.
func Format(tmpl string, values map[string]string) (string, error) {
	t, err := template.New("prompt").Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, values); err != nil {
		return "", fmt.Errorf("render prompt template: %w", err)
	}
	return sb.String(), nil
}
