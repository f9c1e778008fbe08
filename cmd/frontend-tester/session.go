package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/v0xg/frontend-tester/internal/ai"
	"github.com/v0xg/frontend-tester/internal/browser"
	"github.com/v0xg/frontend-tester/internal/config"
	"github.com/v0xg/frontend-tester/internal/ui"
)

// pageLoadTimeout bounds the single-page navigation of analyze and generate.
const pageLoadTimeout = 60 * time.Second

func loadConfig() (*config.Config, error) {
	cfg, source, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = "defaults"
	}
	log.Debug().Str("source", source).Str("provider", cfg.LLM.Provider).Msg("Configuration loaded")
	return cfg, nil
}

// newProvider builds the configured LLM provider. The returned close func is never nil.
func newProvider(ctx context.Context, cfg *config.Config) (ai.Provider, func(), error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, nil, err
	}
	provider, err := ai.NewProvider(ctx, ai.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("AI provider init failed: %w", err)
	}

	closeFn := func() {}
	if c, ok := provider.(io.Closer); ok {
		closeFn = func() {
			if err := c.Close(); err != nil {
				log.Debug().Err(err).Msg("Provider close failed")
			}
		}
	}
	return provider, closeFn, nil
}

// browserOptions applies the --browser and --headed flags over the config.
func browserOptions(cfg *config.Config, name string, headed bool) browser.Options {
	if name == "" && len(cfg.Browser.Browsers) > 0 {
		name = cfg.Browser.Browsers[0]
	}
	return browser.Options{
		Browser:    name,
		Engine:     browser.Engine(cfg.Browser.Engine),
		Headless:   cfg.Browser.Headless && !headed,
		Width:      cfg.Browser.ViewportWidth,
		Height:     cfg.Browser.ViewportHeight,
		Args:       cfg.Browser.Args,
		SlowMo:     time.Duration(cfg.Browser.SlowMo) * time.Millisecond,
		Locale:     cfg.Browser.Locale,
		Timezone:   cfg.Browser.Timezone,
		ProfileDir: cfg.Browser.ProfileDir,
	}
}

// session is a launched browser with one open page.
type session struct {
	browser browser.Browser
	page    browser.Page
}

func openSession(ctx context.Context, opts browser.Options) (*session, error) {
	if _, err := browser.ResolveEngine(opts.Browser, opts.Engine); err != nil {
		return nil, err
	}

	ui.Stdout.Step("Launching %s browser", opts.Browser)
	b, err := browser.Launch(ctx, opts)
	if err != nil {
		ui.Stdout.Failed()
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}
	page, err := b.NewPage(ctx)
	if err != nil {
		ui.Stdout.Failed()
		_ = b.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	ui.Stdout.Done("")
	return &session{browser: b, page: page}, nil
}

func (s *session) Close() {
	if err := s.page.Close(); err != nil {
		log.Debug().Err(err).Msg("Page close failed")
	}
	if err := s.browser.Close(); err != nil {
		log.Debug().Err(err).Msg("Browser close failed")
	}
}

// loadPage navigates the session page and waits for network idle.
func (s *session) loadPage(ctx context.Context, url string) error {
	ui.Stdout.Step("Navigating to %s", url)
	err := s.page.Goto(ctx, url, browser.GotoOptions{
		WaitUntil: browser.WaitNetworkIdle,
		Timeout:   pageLoadTimeout,
	})
	if err != nil {
		ui.Stdout.Failed()
		return fmt.Errorf("navigation failed: %w", err)
	}
	ui.Stdout.Done("")
	return nil
}
