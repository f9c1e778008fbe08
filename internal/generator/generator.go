// Package generator turns page analyses into Gherkin feature files and
// pytest-bdd step definitions.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/v0xg/frontend-tester/internal/ai"
	"github.com/v0xg/frontend-tester/internal/analyzer"
	"github.com/v0xg/frontend-tester/internal/prompts"
	"github.com/v0xg/frontend-tester/internal/urlutil"
)

// Sampling settings per generation step.
const (
	scenariosTemperature = 0.7
	scenariosMaxTokens   = 4000
	featureTemperature   = 0.6
	featureMaxTokens     = 3000
	stepsTemperature     = 0.4
	stepsMaxTokens       = 4000
)

// GeneratedFile is one file written by GenerateCompleteTestSuite. Kind is
// "feature" and "steps" for a suite without flows, or "feature_<flow>" and
// "steps_<flow>" per user flow.
type GeneratedFile struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Generator generates test artifacts with an LLM.
type Generator struct {
	provider   ai.Provider
	pagePrefix bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithPagePrefix prefixes flow file names with the page slug of the URL, so
// suites for several pages can share one output directory.
func WithPagePrefix() Option {
	return func(g *Generator) {
		g.pagePrefix = true
	}
}

// New creates a Generator backed by provider.
func New(provider ai.Provider, opts ...Option) *Generator {
	g := &Generator{provider: provider}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateScenarios asks for free-form Gherkin scenarios covering the analyzed
// page. The response is returned uncleaned.
func (g *Generator) GenerateScenarios(ctx context.Context, url, title string, analysis any) (string, error) {
	analysisJSON, err := indentJSON(analysis)
	if err != nil {
		return "", err
	}

	userPrompt, err := prompts.Format(prompts.GenerateScenariosUser, map[string]string{
		"URL":      url,
		"Title":    title,
		"Analysis": analysisJSON,
	})
	if err != nil {
		return "", err
	}

	scenarios, err := g.provider.Complete(ctx, ai.Request{
		System:      prompts.GenerateScenariosSystem,
		User:        userPrompt,
		Temperature: scenariosTemperature,
		MaxTokens:   scenariosMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate scenarios: %w", err)
	}
	return scenarios, nil
}

// GenerateFeatureFile generates a cleaned feature file for one user flow.
func (g *Generator) GenerateFeatureFile(ctx context.Context, appName, url, flowName string, elements any) (string, error) {
	elementsJSON, err := indentJSON(elements)
	if err != nil {
		return "", err
	}

	userPrompt, err := prompts.Format(prompts.GenerateFeatureFileUser, map[string]string{
		"AppName":  appName,
		"URL":      url,
		"FlowName": flowName,
		"Elements": elementsJSON,
	})
	if err != nil {
		return "", err
	}

	content, err := g.provider.Complete(ctx, ai.Request{
		System:      prompts.GenerateFeatureFileSystem,
		User:        userPrompt,
		Temperature: featureTemperature,
		MaxTokens:   featureMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate feature file for %q: %w", flowName, err)
	}
	return CleanCodeResponse(content), nil
}

// GenerateStepDefinitions generates cleaned Python step definitions for steps.
func (g *Generator) GenerateStepDefinitions(ctx context.Context, steps []string, url string, elements any) (string, error) {
	elementsJSON, err := indentJSON(elements)
	if err != nil {
		return "", err
	}

	userPrompt, err := prompts.Format(prompts.GenerateStepDefinitionsUser, map[string]string{
		"Steps":    strings.Join(steps, "\n"),
		"URL":      url,
		"Elements": elementsJSON,
	})
	if err != nil {
		return "", err
	}

	code, err := g.provider.Complete(ctx, ai.Request{
		System:      prompts.GenerateStepDefinitionsSystem,
		User:        userPrompt,
		Temperature: stepsTemperature,
		MaxTokens:   stepsMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate step definitions: %w", err)
	}
	return CleanCodeResponse(code), nil
}

// GenerateCompleteTestSuite writes features/*.feature and steps/test_*.py
// under outputDir. Without user flows in the analysis it writes one scenario
// set named after the URL; otherwise one feature and step file per flow,
// prefixed with the page slug under WithPagePrefix. A
// step file is skipped when its feature has no step lines. Generation errors
// abort the suite; files written before the error are kept.
func (g *Generator) GenerateCompleteTestSuite(ctx context.Context, appName, url string, analysis *analyzer.PageAnalysis, outputDir string) ([]GeneratedFile, error) {
	featuresDir := filepath.Join(outputDir, "features")
	stepsDir := filepath.Join(outputDir, "steps")
	for _, dir := range []string{featuresDir, stepsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	flows := analysis.UserFlows()
	if len(flows) == 0 {
		return g.generateGenericSuite(ctx, url, analysis, featuresDir, stepsDir)
	}

	var files []GeneratedFile
	for i, flow := range flows {
		flowName := flow.Name
		if flowName == "" {
			flowName = fmt.Sprintf("Flow %d", i+1)
		}
		safeName := SanitizeFilename(flowName)
		if safeName == "" {
			safeName = fmt.Sprintf("flow_%d", i+1)
		}
		if g.pagePrefix {
			safeName = urlutil.PageSlug(url) + "_" + safeName
		}

		log.Debug().Str("flow", flowName).Msg("Generating feature file")
		feature, err := g.GenerateFeatureFile(ctx, appName, url, flowName, analysis.BasicElements)
		if err != nil {
			return files, err
		}

		featurePath := filepath.Join(featuresDir, safeName+".feature")
		if err := SaveFeatureFile(feature, featurePath); err != nil {
			return files, err
		}
		files = append(files, GeneratedFile{Kind: "feature_" + safeName, Path: featurePath})

		stepsFile, err := g.writeSteps(ctx, feature, url, analysis, filepath.Join(stepsDir, "test_"+safeName+".py"))
		if err != nil {
			return files, err
		}
		if stepsFile != "" {
			files = append(files, GeneratedFile{Kind: "steps_" + safeName, Path: stepsFile})
		}
	}
	return files, nil
}

func (g *Generator) generateGenericSuite(ctx context.Context, url string, analysis *analyzer.PageAnalysis, featuresDir, stepsDir string) ([]GeneratedFile, error) {
	log.Debug().Str("url", url).Msg("No user flows found, generating generic scenarios")

	scenarios, err := g.GenerateScenarios(ctx, url, analysis.Title, analysis)
	if err != nil {
		return nil, err
	}
	scenarios = CleanCodeResponse(scenarios)

	name := urlutil.PageSlug(url)
	featurePath := filepath.Join(featuresDir, name+".feature")
	if err := SaveFeatureFile(scenarios, featurePath); err != nil {
		return nil, err
	}
	files := []GeneratedFile{{Kind: "feature", Path: featurePath}}

	stepsFile, err := g.writeSteps(ctx, scenarios, url, analysis, filepath.Join(stepsDir, "test_"+name+".py"))
	if err != nil {
		return files, err
	}
	if stepsFile != "" {
		files = append(files, GeneratedFile{Kind: "steps", Path: stepsFile})
	}
	return files, nil
}

// writeSteps generates and saves step definitions for feature. It returns ""
// without calling the model when the feature has no steps.
func (g *Generator) writeSteps(ctx context.Context, feature, url string, analysis *analyzer.PageAnalysis, path string) (string, error) {
	steps := ExtractSteps(feature)
	if len(steps) == 0 {
		log.Debug().Str("path", path).Msg("No Gherkin steps found, skipping step definitions")
		return "", nil
	}

	code, err := g.GenerateStepDefinitions(ctx, steps, url, analysis.BasicElements)
	if err != nil {
		return "", err
	}
	if err := SaveStepDefinitions(code, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFeatureFile writes a feature file, creating parent directories.
func SaveFeatureFile(content, path string) error {
	return writeFile(content, path)
}

// SaveStepDefinitions writes step definitions, creating parent directories.
func SaveStepDefinitions(code, path string) error {
	return writeFile(code, path)
}

func writeFile(content, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt data: %w", err)
	}
	return string(data), nil
}
