package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.InputBucket = "items"
	cfg.InputKey = "asins.json"
	cfg.OutputBucket = "results"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "local input and output", mutate: func(c *Config) {
			c.InputBucket = ""
			c.InputKey = ""
			c.OutputBucket = ""
			c.LocalInput = "asins.json"
			c.LocalOutput = "out"
		}},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "bulk" }, wantErr: true},
		{name: "bad engine", mutate: func(c *Config) { c.Engine = "curl" }, wantErr: true},
		{name: "empty base URL", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "base URL without host", mutate: func(c *Config) { c.BaseURL = "/relative" }, wantErr: true},
		{name: "no input", mutate: func(c *Config) {
			c.InputBucket = ""
			c.InputKey = ""
		}, wantErr: true},
		{name: "no output", mutate: func(c *Config) { c.OutputBucket = "" }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.DelayMin = -time.Second }, wantErr: true},
		{name: "inverted delays", mutate: func(c *Config) {
			c.DelayMin = 10 * time.Second
			c.DelayMax = 2 * time.Second
		}, wantErr: true},
		{name: "zero fetch timeout", mutate: func(c *Config) { c.FetchTimeout = 0 }, wantErr: true},
		{name: "search without max results", mutate: func(c *Config) {
			c.Mode = ModeSearch
			c.MaxResults = 0
		}, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.MaxAttempts = 0 }, wantErr: true},
		{name: "backoff base too small", mutate: func(c *Config) { c.BackoffBase = 1 }, wantErr: true},
		{name: "jitter above one", mutate: func(c *Config) { c.Jitter = 1.5 }, wantErr: true},
		{name: "no user agents", mutate: func(c *Config) { c.UserAgents = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPickUserAgent(t *testing.T) {
	cfg := DefaultConfig()
	for i := 0; i < 20; i++ {
		ua := cfg.PickUserAgent()
		found := false
		for _, candidate := range cfg.UserAgents {
			if ua == candidate {
				found = true
			}
		}
		if !found {
			t.Fatalf("PickUserAgent returned %q, not in configured list", ua)
		}
	}

	empty := &Config{}
	if ua := empty.PickUserAgent(); ua != "" {
		t.Errorf("PickUserAgent with no agents = %q, want empty", ua)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("PRICEWATCH_TEST_STR", "hello")
	t.Setenv("PRICEWATCH_TEST_INT", "42")
	t.Setenv("PRICEWATCH_TEST_BOOL", "True")
	t.Setenv("PRICEWATCH_TEST_BAD", "not-a-number")
	t.Setenv("PRICEWATCH_TEST_BLANK", "  ")

	if v, ok := EnvString("PRICEWATCH_TEST_STR"); !ok || v != "hello" {
		t.Errorf("EnvString = %q, %v", v, ok)
	}
	if _, ok := EnvString("PRICEWATCH_TEST_BLANK"); ok {
		t.Error("blank values must read as unset")
	}
	if _, ok := EnvString("PRICEWATCH_TEST_MISSING"); ok {
		t.Error("missing values must read as unset")
	}

	if v, ok, err := EnvInt("PRICEWATCH_TEST_INT"); err != nil || !ok || v != 42 {
		t.Errorf("EnvInt = %d, %v, %v", v, ok, err)
	}
	if _, _, err := EnvInt("PRICEWATCH_TEST_BAD"); err == nil {
		t.Error("expected error for non-numeric value")
	}

	if v, ok, err := EnvBool("PRICEWATCH_TEST_BOOL"); err != nil || !ok || !v {
		t.Errorf("EnvBool = %v, %v, %v", v, ok, err)
	}
}
