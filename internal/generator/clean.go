package generator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fenceOpenRe     = regexp.MustCompile("(?m)^```[a-z]*\n")
	fenceCloseRe    = regexp.MustCompile("(?m)\n```$")
	fenceLineRe     = regexp.MustCompile("(?m)^```[a-z]*$")
	herePreambleRe  = regexp.MustCompile(`(?i)^Here (is|are|'s).*?:\s*\n+`)
	belowPreambleRe = regexp.MustCompile(`(?i)^Below (is|are).*?:\s*\n+`)
)

// contentMarkers are the line prefixes that start a feature file or Python source.
var contentMarkers = []string{"Feature:", "import", "from", "@", "def", "class"}

// stepKeywords start a Gherkin step line.
var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// CleanCodeResponse strips markdown fences and a leading "Here is..." or
// "Below is..." sentence from a model response. If the text still does not
// start with a content marker, everything before the first line that does is
// dropped. Text with no such line is returned trimmed but otherwise as is.
func CleanCodeResponse(response string) string {
	cleaned := fenceOpenRe.ReplaceAllString(response, "")
	cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	cleaned = fenceLineRe.ReplaceAllString(cleaned, "")

	cleaned = herePreambleRe.ReplaceAllString(cleaned, "")
	cleaned = belowPreambleRe.ReplaceAllString(cleaned, "")

	if !hasContentMarker(strings.TrimSpace(cleaned)) {
		lines := strings.Split(cleaned, "\n")
		for i, line := range lines {
			if hasContentMarker(strings.TrimSpace(line)) {
				cleaned = strings.Join(lines[i:], "\n")
				break
			}
		}
	}

	return strings.TrimSpace(cleaned)
}

func hasContentMarker(s string) bool {
	for _, m := range contentMarkers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

// ExtractSteps returns the Gherkin step lines of a feature file, trimmed and
// de-duplicated, in order of first appearance.
func ExtractSteps(feature string) []string {
	var steps []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(feature, "\n") {
		line = strings.TrimSpace(line)
		if !isStep(line) || seen[line] {
			continue
		}
		seen[line] = true
		steps = append(steps, line)
	}
	return steps
}

func isStep(line string) bool {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

// SanitizeFilename lowercases name, turns spaces into underscores and drops
// every character that is not a letter, digit or underscore.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}
