// Package fetch retrieves product pages with mandatory pacing between
// requests. Two session engines share one interface: a plain HTTP client
// and a headless browser for pages that assemble in script.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/gocolly/colly/v2"

	"github.com/lfcamargo/pricewatch/extract"
)

// Session fetches one page at a time and parses it into a Document.
// A session belongs to a single worker; implementations need not be safe
// for concurrent use.
type Session interface {
	Open(ctx context.Context, pageURL, readyMarker string) (extract.Document, error)
	Close() error
}

// SessionOptions configures a new session.
type SessionOptions struct {
	UserAgent    string
	Proxy        string
	Timeout      time.Duration
	ReadyTimeout time.Duration
	Headless     bool
}

// HTTPSession fetches pages over plain HTTP using a tuned transport.
type HTTPSession struct {
	collector *colly.Collector
	opts      SessionOptions

	// populated by the collector callbacks during Open
	body    []byte
	status  int
	lastErr error
}

// NewHTTPSession builds a session with connection reuse and sane
// timeouts. Response callbacks are registered once and write into session
// fields that Open resets per request.
func NewHTTPSession(opts SessionOptions) (*HTTPSession, error) {
	c := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(opts.Timeout)

	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
	}
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	c.WithTransport(transport)

	s := &HTTPSession{collector: c, opts: opts}
	c.OnResponse(func(r *colly.Response) {
		s.body = r.Body
		s.status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			s.status = r.StatusCode
		}
		s.lastErr = err
	})
	return s, nil
}

// Open fetches pageURL and parses the response body. When readyMarker is
// non-empty the parsed document must contain a node matching it, otherwise
// the fetch counts as a timeout: the page was served but never reached a
// usable state.
func (s *HTTPSession) Open(ctx context.Context, pageURL, readyMarker string) (extract.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, Classify(err)
	}

	s.body = nil
	s.status = 0
	s.lastErr = nil

	// Visit blocks; the request timeout set on the collector bounds it.
	if err := s.collector.Visit(pageURL); err != nil {
		return nil, Classify(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, Classify(err)
	}
	if s.lastErr != nil {
		return nil, Classify(s.lastErr)
	}
	if s.status >= 400 {
		return nil, ErrUnavailable{Err: fmt.Errorf("status %d for %s", s.status, pageURL)}
	}

	doc, err := extract.NewDocument(string(s.body))
	if err != nil {
		return nil, ErrUnavailable{Err: err}
	}
	if readyMarker != "" {
		sel, err := cascadia.Compile(readyMarker)
		if err != nil {
			return nil, fmt.Errorf("invalid ready marker %q: %w", readyMarker, err)
		}
		if _, ok := doc.Find(sel); !ok {
			return nil, ErrTimeout{Err: fmt.Errorf("marker %q absent from %s", readyMarker, pageURL)}
		}
	}
	return doc, nil
}

// Close releases the session. The HTTP engine holds no persistent
// resources beyond idle connections.
func (s *HTTPSession) Close() error {
	return nil
}
