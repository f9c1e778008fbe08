package prompts

const GenerateScenariosSystem = `You are an expert QA engineer specializing in BDD (Behavior-Driven Development).
Generate Gherkin scenarios for automated testing based on UI analysis.

Guidelines:
1. Write clear, concise scenarios in Gherkin format
2. Use Given-When-Then structure
3. Focus on user behavior, not implementation
4. Each scenario should test one specific behavior
5. Use realistic test data
6. Include both positive and negative test cases
7. Add appropriate tags (@smoke, @regression, @critical, etc.)

Generate scenarios that can be automated with Playwright.`

// GenerateScenariosUser takes URL, Title and Analysis.
const GenerateScenariosUser = `Based on the following UI analysis, generate BDD test scenarios:

URL: {{.URL}}
Page Title: {{.Title}}

UI Analysis:
{{.Analysis}}

Generate Gherkin scenarios for testing this page. Include:
1. Main user flows (happy paths)
2. Edge cases
3. Validation scenarios
4. Navigation scenarios

Format as valid Gherkin with proper Feature and Scenario structure.
Add tags for test categorization (@smoke, @regression, etc.).`

const GenerateFeatureFileSystem = `You are a BDD test automation expert.
Generate complete Gherkin feature files for web application testing.`

// GenerateFeatureFileUser takes AppName, URL, FlowName and Elements.
const GenerateFeatureFileUser = `Generate a complete Gherkin feature file for:

Application: {{.AppName}}
URL: {{.URL}}
User Flow: {{.FlowName}}

Interactive Elements:
{{.Elements}}

Include:
1. Feature description
2. Background (if needed)
3. Multiple scenarios covering:
   - Happy path
   - Edge cases
   - Error handling
4. Appropriate tags

Use step definitions that can be implemented with Playwright.
Focus on blackbox testing (no internal implementation details).`

const GenerateStepDefinitionsSystem = `You are a Playwright automation expert.
Generate Python step definitions for pytest-bdd that implement Gherkin scenarios.

Guidelines:
1. Use pytest-bdd decorators (@given, @when, @then)
2. Use Playwright async API
3. Write robust selectors
4. Include proper error handling
5. Add type hints
6. Use fixtures (page, browser_context)
7. Make steps reusable`

// GenerateStepDefinitionsUser takes Steps, URL and Elements.
const GenerateStepDefinitionsUser = `Generate Python step definitions for these Gherkin steps:

{{.Steps}}

Page URL: {{.URL}}
Available Elements:
{{.Elements}}

Requirements:
1. Use pytest-bdd with Playwright
2. Use async/await
3. Prefer stable selectors (id, data-testid, role)
4. Include assertions with clear error messages
5. Add docstrings

Generate complete, working Python code.`
