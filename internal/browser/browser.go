// Package browser is the page-driver seam between the crawler and a real
// browser. Three engines implement it: rod (the default for Chromium-family
// browsers), chromedp, and playwright (required for Firefox and WebKit).
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownBrowser is returned for a browser name no engine knows.
	ErrUnknownBrowser = errors.New("unknown browser")
	// ErrUnsupportedBrowser is returned when the chosen engine cannot drive the browser.
	ErrUnsupportedBrowser = errors.New("browser not supported by engine")
)

// WaitUntil selects the load condition Goto waits for.
type WaitUntil string

const (
	WaitLoad        WaitUntil = "load"
	WaitNetworkIdle WaitUntil = "networkidle"
)

// Engine names a browser automation backend.
type Engine string

const (
	EngineAuto       Engine = ""
	EngineRod        Engine = "rod"
	EngineChromedp   Engine = "chromedp"
	EnginePlaywright Engine = "playwright"
)

// GotoOptions configures a navigation.
type GotoOptions struct {
	WaitUntil WaitUntil
	Timeout   time.Duration
}

// Page is a single browser tab. The crawler reuses one Page for a whole run.
type Page interface {
	// Goto navigates and blocks until the wait condition holds or the timeout expires.
	Goto(ctx context.Context, url string, opts GotoOptions) error
	// Content returns the rendered HTML of the current document.
	Content(ctx context.Context) (string, error)
	// Title returns the current document title.
	Title(ctx context.Context) (string, error)
	// URL returns the current location, or "" if it cannot be read.
	URL() string
	Close() error
}

// Browser is a running browser process.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Options configures Launch.
type Options struct {
	Browser    string // chromium, chrome, edge, firefox, webkit, safari
	Engine     Engine
	Headless   bool
	Width      int
	Height     int
	Args       []string
	SlowMo     time.Duration
	Locale     string
	Timezone   string
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
}

// family groups browser names by rendering engine.
type family int

const (
	familyChromium family = iota
	familyFirefox
	familyWebKit
)

func browserFamily(name string) (family, error) {
	switch strings.ToLower(name) {
	case "", "chromium", "chrome", "edge":
		return familyChromium, nil
	case "firefox":
		return familyFirefox, nil
	case "webkit", "safari":
		return familyWebKit, nil
	default:
		return 0, fmt.Errorf("%w: %s (supported: chromium, chrome, edge, firefox, webkit, safari)", ErrUnknownBrowser, name)
	}
}

// ResolveEngine picks the engine for a browser. An explicit engine must be
// able to drive the browser; the automatic choice is rod for Chromium-family
// browsers and playwright for everything else.
func ResolveEngine(browserName string, engine Engine) (Engine, error) {
	fam, err := browserFamily(browserName)
	if err != nil {
		return "", err
	}

	switch engine {
	case EngineAuto:
		if fam == familyChromium {
			return EngineRod, nil
		}
		return EnginePlaywright, nil
	case EngineRod, EngineChromedp:
		if fam != familyChromium {
			return "", fmt.Errorf("%w: %s cannot drive %s", ErrUnsupportedBrowser, engine, browserName)
		}
		return engine, nil
	case EnginePlaywright:
		return engine, nil
	default:
		return "", fmt.Errorf("unknown engine %q (supported: rod, chromedp, playwright)", engine)
	}
}

// Launch starts a browser with the engine resolved from opts.
func Launch(ctx context.Context, opts Options) (Browser, error) {
	if opts.Width == 0 {
		opts.Width = 1280
	}
	if opts.Height == 0 {
		opts.Height = 720
	}

	engine, err := ResolveEngine(opts.Browser, opts.Engine)
	if err != nil {
		return nil, err
	}

	var b Browser
	switch engine {
	case EngineChromedp:
		b, err = launchChromedp(ctx, opts)
	case EnginePlaywright:
		b, err = launchPlaywright(opts)
	default:
		b, err = launchRod(ctx, opts)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// splitArg turns "--name=value" into its parts.
func splitArg(arg string) (name, value string) {
	arg = strings.TrimLeft(arg, "-")
	name, value, _ = strings.Cut(arg, "=")
	return name, value
}
