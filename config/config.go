// Package config holds run configuration for the scraper.
package config

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"
)

// Modes for interpreting work items.
const (
	ModeASIN   = "asin"
	ModeSearch = "search"
)

// Fetch engines.
const (
	EngineHTTP    = "http"
	EngineBrowser = "browser"
)

// Config holds scraper configuration. The core consumes it; ownership of
// credentials and anti-detection settings stays with the caller.
type Config struct {
	Mode    string // asin or search
	BaseURL string

	// Input: either an S3 bucket/key or a local JSON file.
	InputBucket string
	InputKey    string
	LocalInput  string

	// Output: S3 prefix and/or a local directory; optional CSV export.
	OutputBucket string
	OutputPrefix string
	LocalOutput  string
	CSVPath      string

	Workers int

	Engine     string // http or browser
	Headless   bool
	Proxy      string
	UserAgents []string

	DelayMin     time.Duration
	DelayMax     time.Duration
	FetchTimeout time.Duration
	ReadyTimeout time.Duration
	ReadyMarker  string

	MaxResults    int // search mode: detail pages per term
	DedupeMaxSize int // search mode: bounded cross-term ASIN dedupe

	MaxAttempts int     // storage retries
	BackoffBase float64 // seconds; delay = base^attempt
	BackoffMax  time.Duration
	Jitter      float64 // fraction of the delay, 0 disables

	MetricsAddr string
	Verbose     bool
}

// DefaultConfig returns conservative defaults for the public storefront.
func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeASIN,
		BaseURL:       "https://www.amazon.com",
		OutputPrefix:  "pricing_results/",
		Workers:       4,
		Engine:        EngineHTTP,
		Headless:      true,
		UserAgents:    defaultUserAgents(),
		DelayMin:      2 * time.Second,
		DelayMax:      6 * time.Second,
		FetchTimeout:  30 * time.Second,
		ReadyTimeout:  10 * time.Second,
		ReadyMarker:   "#dp-container",
		MaxResults:    10,
		DedupeMaxSize: 4096,
		MaxAttempts:   3,
		BackoffBase:   2,
		BackoffMax:    30 * time.Second,
		Jitter:        0.1,
	}
}

func defaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	}
}

// PickUserAgent returns a random user agent for a new session.
func (c *Config) PickUserAgent() string {
	if len(c.UserAgents) == 0 {
		return ""
	}
	return c.UserAgents[rand.Intn(len(c.UserAgents))]
}

// HasS3Input reports whether input comes from object storage.
func (c *Config) HasS3Input() bool {
	return c.InputBucket != "" && c.InputKey != ""
}

// HasS3Output reports whether results go to object storage.
func (c *Config) HasS3Output() bool {
	return c.OutputBucket != ""
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Mode != ModeASIN && c.Mode != ModeSearch {
		return fmt.Errorf("mode must be %q or %q", ModeASIN, ModeSearch)
	}
	if c.Engine != EngineHTTP && c.Engine != EngineBrowser {
		return fmt.Errorf("engine must be %q or %q", EngineHTTP, EngineBrowser)
	}

	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if !c.HasS3Input() && c.LocalInput == "" {
		return fmt.Errorf("an input source is required (bucket/key or local file)")
	}
	if !c.HasS3Output() && c.LocalOutput == "" {
		return fmt.Errorf("an output sink is required (bucket or local directory)")
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.DelayMin < 0 || c.DelayMax < 0 {
		return fmt.Errorf("pacing delays cannot be negative")
	}
	if c.DelayMin > c.DelayMax {
		return fmt.Errorf("pacing delay min (%s) cannot exceed max (%s)", c.DelayMin, c.DelayMax)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready timeout must be positive")
	}
	if c.Mode == ModeSearch && c.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive in search mode")
	}
	if c.DedupeMaxSize <= 0 {
		return fmt.Errorf("dedupe size must be positive")
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1")
	}
	if c.BackoffBase <= 1 {
		return fmt.Errorf("backoff base must be greater than 1")
	}
	if c.BackoffMax < 0 {
		return fmt.Errorf("backoff max cannot be negative")
	}
	if c.Jitter < 0 || c.Jitter > 1 {
		return fmt.Errorf("jitter must be within [0, 1]")
	}
	if len(c.UserAgents) == 0 {
		return fmt.Errorf("at least one user agent is required")
	}

	return nil
}
