package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

type chromedpBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cancelAlloc context.CancelFunc
}

func launchChromedp(ctx context.Context, opts Options) (*chromedpBrowser, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	if opts.ProfileDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.ProfileDir))
	}
	for _, arg := range opts.Args {
		name, value := splitArg(arg)
		if value == "" {
			allocOpts = append(allocOpts, chromedp.Flag(name, true))
		} else {
			allocOpts = append(allocOpts, chromedp.Flag(name, value))
		}
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	log.Debug().Str("engine", string(EngineChromedp)).Bool("headless", opts.Headless).Msg("Browser launched")
	return &chromedpBrowser{ctx: browserCtx, cancel: cancel, cancelAlloc: cancelAlloc}, nil
}

func (b *chromedpBrowser) NewPage(_ context.Context) (Page, error) {
	tabCtx, cancel := chromedp.NewContext(b.ctx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &chromedpPage{ctx: tabCtx, cancel: cancel}, nil
}

func (b *chromedpBrowser) Close() error {
	b.cancel()
	b.cancelAlloc()
	return nil
}

type chromedpPage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes actions on the tab, stopping early if ctx is done.
func (p *chromedpPage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (p *chromedpPage) Goto(ctx context.Context, url string, opts GotoOptions) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	idle := make(chan struct{}, 1)
	if opts.WaitUntil == WaitNetworkIdle {
		listenCtx, stopListening := context.WithCancel(p.ctx)
		defer stopListening()
		chromedp.ListenTarget(listenCtx, func(ev any) {
			if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
				select {
				case idle <- struct{}{}:
				default:
				}
			}
		})
	}

	err := p.run(ctx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	if opts.WaitUntil != WaitNetworkIdle {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for network idle %s: %w", url, ctx.Err())
	}
}

func (p *chromedpPage) Content(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromedpPage) Title(ctx context.Context) (string, error) {
	var title string
	if err := p.run(ctx, chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

func (p *chromedpPage) URL() string {
	var location string
	if err := chromedp.Run(p.ctx, chromedp.Location(&location)); err != nil {
		return ""
	}
	return location
}

func (p *chromedpPage) Close() error {
	p.cancel()
	return nil
}
