package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockViewer/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("expected yahoo provider, got %q", cfg.DataSource.Provider)
	}
	if cfg.DataSource.BenchmarkSymbol != "^N225" || cfg.DataSource.BenchmarkName != "日経平均" {
		t.Errorf("unexpected benchmark %q %q", cfg.DataSource.BenchmarkSymbol, cfg.DataSource.BenchmarkName)
	}
	if cfg.DataSource.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.DataSource.Timeout)
	}
	if cfg.Period() != model.Period1mo {
		t.Errorf("expected 1mo default period, got %q", cfg.Period())
	}
	if cfg.Probe.Cron != "" {
		t.Errorf("probe should be disabled by default, got %q", cfg.Probe.Cron)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
  read_timeout: 5s
data_source:
  provider: mock
  timeout: 10s
  default_period: 6mo
log:
  format: json
probe:
  cron: "0 */5 * * * *"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server not loaded: %+v", cfg.Server)
	}
	if cfg.DataSource.Provider != "mock" || cfg.DataSource.Timeout != 10*time.Second {
		t.Errorf("data_source not loaded: %+v", cfg.DataSource)
	}
	if cfg.Period() != model.Period6mo {
		t.Errorf("expected 6mo, got %q", cfg.Period())
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("log not loaded: %+v", cfg.Log)
	}
	if cfg.Probe.Cron != "0 */5 * * * *" {
		t.Errorf("probe not loaded: %q", cfg.Probe.Cron)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
data_source:
  provider: yahoo
  benchmark_symbol: "^GSPC"
`)
	t.Setenv("SERVER_ADDR", ":7000")
	t.Setenv("DATA_PROVIDER", "mock")
	t.Setenv("DATA_TIMEOUT", "3s")
	t.Setenv("HTTPS_PROXY", "http://proxy.local:3128")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("env should override addr, got %q", cfg.Server.Addr)
	}
	if cfg.DataSource.Provider != "mock" {
		t.Errorf("env should override provider, got %q", cfg.DataSource.Provider)
	}
	if cfg.DataSource.Timeout != 3*time.Second {
		t.Errorf("env should override timeout, got %v", cfg.DataSource.Timeout)
	}
	if cfg.DataSource.BenchmarkSymbol != "^GSPC" {
		t.Errorf("unset env must keep the yaml value, got %q", cfg.DataSource.BenchmarkSymbol)
	}
	if cfg.Proxy != "http://proxy.local:3128" {
		t.Errorf("env should set proxy, got %q", cfg.Proxy)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [unclosed")); err == nil {
		t.Error("expected parse error")
	}

	t.Setenv("DATA_TIMEOUT", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected env parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"timeout", func(c *Config) { c.DataSource.Timeout = -time.Second }},
		{"benchmark", func(c *Config) { c.DataSource.BenchmarkSymbol = "" }},
		{"period", func(c *Config) { c.DataSource.DefaultPeriod = "10y" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
