package config

// Default constants for project configuration
const (
	DefaultName              = "my-tests"
	DefaultTargetURL         = "http://localhost:3000"
	DefaultBrowser           = "chromium"
	DefaultHeadless          = true
	DefaultTimeoutMS         = 30000
	DefaultViewportWidth     = 1280
	DefaultViewportHeight    = 720
	DefaultPlaywrightImage   = "mcr.microsoft.com/playwright:v1.40.0-jammy"
	DefaultLLMProvider       = "openai"
	DefaultLLMModel          = "gpt-4"
	DefaultLLMTemperature    = 0.7
	DefaultLLMMaxTokens      = 2000
	DefaultVisualThreshold   = 0.01
	DefaultCrawlMaxPages     = 50
	DefaultCrawlSameOrigin   = true
	DefaultRequestsPerSecond = 0.0

	// KeyringService is the service name API keys are stored under.
	KeyringService = "frontend-tester"
	// FileName is the name of project and global config files.
	FileName = "config.yaml"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Name:       DefaultName,
		TargetURLs: []string{DefaultTargetURL},
		Browser: BrowserConfig{
			Browsers:       []string{DefaultBrowser},
			Headless:       DefaultHeadless,
			Timeout:        DefaultTimeoutMS,
			ViewportWidth:  DefaultViewportWidth,
			ViewportHeight: DefaultViewportHeight,
			Args:           []string{},
		},
		Docker: DockerConfig{
			Images: map[string]string{
				"chromium": DefaultPlaywrightImage,
				"firefox":  DefaultPlaywrightImage,
				"webkit":   DefaultPlaywrightImage,
			},
		},
		LLM: LLMConfig{
			Provider:    DefaultLLMProvider,
			Model:       DefaultLLMModel,
			Temperature: DefaultLLMTemperature,
			MaxTokens:   DefaultLLMMaxTokens,
		},
		VisualRegression: VisualRegressionConfig{
			Threshold: DefaultVisualThreshold,
		},
		Crawl: CrawlConfig{
			MaxPages:          DefaultCrawlMaxPages,
			SameOriginOnly:    DefaultCrawlSameOrigin,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
	}
}
