package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/lfcamargo/pricewatch/extract"
)

// BrowserSession fetches pages through a headless Chromium instance for
// listings that only materialize after script execution.
type BrowserSession struct {
	browser *rod.Browser
	page    *rod.Page
	opts    SessionOptions
}

// NewBrowserSession launches a browser and opens a blank page that the
// session reuses for every fetch.
func NewBrowserSession(opts SessionOptions) (*BrowserSession, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-infobars").
		Set("disable-dev-shm-usage")
	l.Delete("enable-automation")
	if opts.Proxy != "" {
		l.Proxy(opts.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		browser.Close()
		return nil, fmt.Errorf("installing stealth script: %w", err)
	}
	if opts.UserAgent != "" {
		override := proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}
		if err := page.SetUserAgent(&override); err != nil {
			browser.Close()
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}

	return &BrowserSession{browser: browser, page: page, opts: opts}, nil
}

// Open navigates to pageURL, waits for the DOM to settle and for the ready
// marker when one is given, then snapshots the rendered HTML.
func (s *BrowserSession) Open(ctx context.Context, pageURL, readyMarker string) (extract.Document, error) {
	p := s.page.Context(ctx)

	if err := p.Navigate(pageURL); err != nil {
		return nil, Classify(err)
	}

	// Best effort; heavy pages keep mutating and would stall a strict wait.
	waitCtx, cancel := context.WithTimeout(ctx, s.opts.ReadyTimeout)
	_ = p.Context(waitCtx).WaitDOMStable(300*time.Millisecond, 0.1)
	cancel()

	if readyMarker != "" {
		if _, err := p.Timeout(s.opts.ReadyTimeout).Element(readyMarker); err != nil {
			return nil, ErrTimeout{Err: fmt.Errorf("marker %q absent from %s: %w", readyMarker, pageURL, err)}
		}
	}

	html, err := p.HTML()
	if err != nil {
		return nil, Classify(err)
	}
	return extract.NewDocument(html)
}

// Close tears down the page and the browser process.
func (s *BrowserSession) Close() error {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}
