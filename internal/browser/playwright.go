package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
)

type playwrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

func launchPlaywright(opts Options) (*playwrightBrowser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright (run `playwright install`?): %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(float64(opts.SlowMo.Milliseconds()))
	}

	var browserType playwright.BrowserType
	switch strings.ToLower(opts.Browser) {
	case "firefox":
		browserType = pw.Firefox
	case "webkit", "safari":
		browserType = pw.WebKit
	case "chrome":
		browserType = pw.Chromium
		launchOpts.Channel = playwright.String("chrome")
	case "edge":
		browserType = pw.Chromium
		launchOpts.Channel = playwright.String("msedge")
	default:
		browserType = pw.Chromium
	}

	b, err := browserType.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: opts.Width, Height: opts.Height},
	}
	if opts.Locale != "" {
		ctxOpts.Locale = playwright.String(opts.Locale)
	}
	if opts.Timezone != "" {
		ctxOpts.TimezoneId = playwright.String(opts.Timezone)
	}
	bctx, err := b.NewContext(ctxOpts)
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	log.Debug().Str("engine", string(EnginePlaywright)).Str("browser", opts.Browser).Bool("headless", opts.Headless).Msg("Browser launched")
	return &playwrightBrowser{pw: pw, browser: b, context: bctx}, nil
}

func (b *playwrightBrowser) NewPage(_ context.Context) (Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (b *playwrightBrowser) Close() error {
	return errors.Join(b.context.Close(), b.browser.Close(), b.pw.Stop())
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(ctx context.Context, url string, opts GotoOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gotoOpts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if opts.WaitUntil == WaitNetworkIdle {
		gotoOpts.WaitUntil = playwright.WaitUntilStateNetworkidle
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = playwright.Float(float64(opts.Timeout.Milliseconds()))
	}

	if _, err := p.page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) Content(_ context.Context) (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Title(_ context.Context) (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
