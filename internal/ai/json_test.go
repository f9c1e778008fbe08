package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `  {"key": "value"}  `, `{"key": "value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestParseJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare", `{"page_type": "login"}`},
		{"fenced", "```json\n{\"page_type\": \"login\"}\n```"},
		{"prose", "Here is the analysis:\n{\"page_type\": \"login\"}\nLet me know!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseJSONObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, "login", obj["page_type"])
		})
	}
}

func TestParseJSONObjectBracesInStrings(t *testing.T) {
	obj, err := ParseJSONObject(`Result: {"selector": "a[href='}']", "n": 2} trailing`)
	require.NoError(t, err)
	assert.Equal(t, "a[href='}']", obj["selector"])
	assert.Equal(t, float64(2), obj["n"])
}

func TestParseJSONObjectFailures(t *testing.T) {
	for _, input := range []string{
		"I could not analyze this page.",
		`{"unterminated": true`,
		`[1, 2, 3]`,
		`[{"a":1},{"b":2}]`,
		"```json\n[{\"name\": \"Login\"}]\n```",
		`null`,
	} {
		_, err := ParseJSONObject(input)
		assert.Error(t, err, input)
	}
}
