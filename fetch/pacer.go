package fetch

import (
	"context"
	"math/rand"
	"time"

	"github.com/lfcamargo/pricewatch/extract"
)

// PacedOptions configures the pacing and timeout applied around a session.
type PacedOptions struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	Timeout     time.Duration
	ReadyMarker string
	Metrics     *Metrics
}

// Paced wraps a Session with a mandatory randomized pause before every
// fetch. The pause is never skipped, including before the first request and
// after failures, so a burst of errors cannot collapse into a burst of
// traffic.
type Paced struct {
	session Session
	opts    PacedOptions
}

// NewPaced wraps session with pacing.
func NewPaced(session Session, opts PacedOptions) *Paced {
	return &Paced{session: session, opts: opts}
}

// Fetch retrieves pageURL using the configured ready marker.
func (p *Paced) Fetch(ctx context.Context, pageURL string) (extract.Document, error) {
	return p.FetchMarker(ctx, pageURL, p.opts.ReadyMarker)
}

// FetchMarker retrieves pageURL waiting for the given marker. An empty
// marker skips the readiness check, which search pages need since they
// never carry the product container.
func (p *Paced) FetchMarker(ctx context.Context, pageURL, readyMarker string) (extract.Document, error) {
	p.pause()

	fetchCtx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	doc, err := p.session.Open(fetchCtx, pageURL, readyMarker)
	p.opts.Metrics.ObserveFetch(time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *Paced) pause() {
	delay := p.opts.MinDelay
	if span := p.opts.MaxDelay - p.opts.MinDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay > 0 {
		time.Sleep(delay)
	}
}
