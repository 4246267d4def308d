package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

func newTestSession(t *testing.T) (*HTTPSession, *httpmock.MockTransport) {
	t.Helper()
	s, err := NewHTTPSession(SessionOptions{
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTPSession: %v", err)
	}
	transport := httpmock.NewMockTransport()
	s.collector.WithTransport(transport)
	return s, transport
}

func TestHTTPSessionOpen(t *testing.T) {
	s, transport := newTestSession(t)
	transport.RegisterResponder("GET", "https://shop.test/dp/B001",
		httpmock.NewStringResponder(200, `<html><body>
		  <div id="dp-container"><span id="productTitle">Widget</span></div>
		</body></html>`))

	doc, err := s.Open(context.Background(), "https://shop.test/dp/B001", "#dp-container")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}
}

func TestHTTPSessionMissingMarker(t *testing.T) {
	s, transport := newTestSession(t)
	transport.RegisterResponder("GET", "https://shop.test/dp/B001",
		httpmock.NewStringResponder(200, `<html><body><p>please verify you are human</p></body></html>`))

	_, err := s.Open(context.Background(), "https://shop.test/dp/B001", "#dp-container")
	if !IsTimeout(err) {
		t.Fatalf("err = %v, want timeout for missing marker", err)
	}
}

func TestHTTPSessionNoMarkerSkipsCheck(t *testing.T) {
	s, transport := newTestSession(t)
	transport.RegisterResponder("GET", "https://shop.test/s?k=widgets",
		httpmock.NewStringResponder(200, `<html><body><div class="s-result-item" data-asin="B001"></div></body></html>`))

	if _, err := s.Open(context.Background(), "https://shop.test/s?k=widgets", ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func TestHTTPSessionServerError(t *testing.T) {
	s, transport := newTestSession(t)
	transport.RegisterResponder("GET", "https://shop.test/dp/B001",
		httpmock.NewStringResponder(503, "throttled"))

	_, err := s.Open(context.Background(), "https://shop.test/dp/B001", "#dp-container")
	if err == nil {
		t.Fatal("expected error for 503")
	}
	var unavailable ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %T, want ErrUnavailable", err)
	}
}

func TestHTTPSessionNetworkError(t *testing.T) {
	s, transport := newTestSession(t)
	transport.RegisterNoResponder(httpmock.ConnectionFailure)

	_, err := s.Open(context.Background(), "https://unreachable.test/dp/B001", "")
	if err == nil {
		t.Fatal("expected error for connection failure")
	}
	var unavailable ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %T, want ErrUnavailable", err)
	}
}

func TestHTTPSessionCancelledContext(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Open(ctx, "https://shop.test/dp/B001", ""); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
