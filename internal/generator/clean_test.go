package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCodeResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "gherkin fence",
			input: "```gherkin\nFeature: Login\n  Scenario: ok\n```",
			want:  "Feature: Login\n  Scenario: ok",
		},
		{
			name:  "python fence with preamble",
			input: "Here is the code you asked for:\n\n```python\nimport pytest\n```",
			want:  "import pytest",
		},
		{
			name:  "here's preamble",
			input: "Here's the feature file:\nFeature: Search",
			want:  "Feature: Search",
		},
		{
			name:  "below preamble",
			input: "BELOW ARE the steps:\n\nfrom pytest_bdd import given",
			want:  "from pytest_bdd import given",
		},
		{
			name:  "chatter before marker",
			input: "Sure thing.\nThis covers login.\n@smoke\nFeature: Login",
			want:  "@smoke\nFeature: Login",
		},
		{
			name:  "already clean",
			input: "  Feature: Cart\n",
			want:  "Feature: Cart",
		},
		{
			name:  "no marker passes through",
			input: "  I cannot help with that.  ",
			want:  "I cannot help with that.",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCodeResponse(tt.input))
		})
	}
}

func TestExtractSteps(t *testing.T) {
	feature := `Feature: Login
  Background:
    Given I am on the login page

  Scenario: ok
    Given I am on the login page
    When I enter "a@b.c" into the email field
    And I click "Sign in"
    Then I see the dashboard
    But I do not see an error

  Scenario: bad
    When I click "Sign in"
    Then I see an error`

	assert.Equal(t, []string{
		"Given I am on the login page",
		`When I enter "a@b.c" into the email field`,
		`And I click "Sign in"`,
		"Then I see the dashboard",
		"But I do not see an error",
		`When I click "Sign in"`,
		"Then I see an error",
	}, ExtractSteps(feature))

	assert.Empty(t, ExtractSteps("Feature: nothing here"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Login Flow":          "login_flow",
		"Sign-up / Register!": "signup__register",
		"Checkout (Guest) 2":  "checkout_guest_2",
		"already_clean":       "already_clean",
		"Ünïcode Naïve":       "ünïcode_naïve",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}
