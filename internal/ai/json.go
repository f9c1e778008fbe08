package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from a JSON response.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.ContainsAny(first, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// ParseJSONObject decodes a JSON object from a model response. It accepts the
// bare object, a fenced code block, or an object embedded in surrounding prose.
// Valid JSON that is not an object, such as an array, is an error.
func ParseJSONObject(response string) (map[string]any, error) {
	cleaned := CleanJSONBlock(response)
	for _, candidate := range []string{response, cleaned} {
		if !json.Valid([]byte(candidate)) {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil || obj == nil {
			return nil, errors.New("response is not a JSON object")
		}
		return obj, nil
	}

	start := strings.Index(cleaned, "{")
	if start == -1 {
		return nil, errors.New("no JSON object found in response")
	}

	// Find matching closing brace, ignoring braces inside strings.
	depth := 0
	end := -1
	inString, escaped := false, false
	for i := start; i < len(cleaned) && end == -1; i++ {
		c := cleaned[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				end = i + 1
			}
		}
	}
	if end == -1 {
		return nil, errors.New("no matching closing brace found")
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end]), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("response is not a JSON object")
	}
	return obj, nil
}
