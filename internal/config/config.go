package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"StockViewer/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	DataSource struct {
		Provider        string        `yaml:"provider"`
		ChartBaseURL    string        `yaml:"chart_base_url"`
		SummaryBaseURL  string        `yaml:"summary_base_url"`
		Timeout         time.Duration `yaml:"timeout"`
		BenchmarkSymbol string        `yaml:"benchmark_symbol"`
		BenchmarkName   string        `yaml:"benchmark_name"`
		DefaultPeriod   string        `yaml:"default_period"`
	} `yaml:"data_source"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Probe struct {
		Cron string `yaml:"cron"`
	} `yaml:"probe"`
	View struct {
		AssetsHost string `yaml:"assets_host"`
	} `yaml:"view"`
	Proxy string `yaml:"proxy"`
}

// envOverrides lists the environment variables that override the YAML file.
// Unset variables leave their pointer nil.
type envOverrides struct {
	ServerAddr      *string        `envconfig:"SERVER_ADDR"`
	ReadTimeout     *time.Duration `envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout    *time.Duration `envconfig:"SERVER_WRITE_TIMEOUT"`
	Provider        *string        `envconfig:"DATA_PROVIDER"`
	ChartBaseURL    *string        `envconfig:"YAHOO_CHART_BASE_URL"`
	SummaryBaseURL  *string        `envconfig:"YAHOO_SUMMARY_BASE_URL"`
	Timeout         *time.Duration `envconfig:"DATA_TIMEOUT"`
	BenchmarkSymbol *string        `envconfig:"BENCHMARK_SYMBOL"`
	BenchmarkName   *string        `envconfig:"BENCHMARK_NAME"`
	DefaultPeriod   *string        `envconfig:"DEFAULT_PERIOD"`
	LogLevel        *string        `envconfig:"LOG_LEVEL"`
	LogFormat       *string        `envconfig:"LOG_FORMAT"`
	ProbeCron       *string        `envconfig:"PROBE_CRON"`
	AssetsHost      *string        `envconfig:"ASSETS_HOST"`
	Proxy           *string        `envconfig:"HTTPS_PROXY"`
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	set(&cfg.Server.Addr, env.ServerAddr)
	set(&cfg.Server.ReadTimeout, env.ReadTimeout)
	set(&cfg.Server.WriteTimeout, env.WriteTimeout)
	set(&cfg.DataSource.Provider, env.Provider)
	set(&cfg.DataSource.ChartBaseURL, env.ChartBaseURL)
	set(&cfg.DataSource.SummaryBaseURL, env.SummaryBaseURL)
	set(&cfg.DataSource.Timeout, env.Timeout)
	set(&cfg.DataSource.BenchmarkSymbol, env.BenchmarkSymbol)
	set(&cfg.DataSource.BenchmarkName, env.BenchmarkName)
	set(&cfg.DataSource.DefaultPeriod, env.DefaultPeriod)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Log.Format, env.LogFormat)
	set(&cfg.Probe.Cron, env.ProbeCron)
	set(&cfg.View.AssetsHost, env.AssetsHost)
	set(&cfg.Proxy, env.Proxy)

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 90 * time.Second
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.DataSource.BenchmarkSymbol == "" {
		cfg.DataSource.BenchmarkSymbol = "^N225"
	}
	if cfg.DataSource.BenchmarkName == "" {
		cfg.DataSource.BenchmarkName = "日経平均"
	}
	if cfg.DataSource.DefaultPeriod == "" {
		cfg.DataSource.DefaultPeriod = string(model.DefaultPeriod)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo or mock, got %q", c.DataSource.Provider)
	}
	if c.DataSource.Timeout <= 0 {
		return fmt.Errorf("data_source.timeout must be positive")
	}
	if c.DataSource.BenchmarkSymbol == "" {
		return fmt.Errorf("data_source.benchmark_symbol is required")
	}
	if _, err := model.ParsePeriod(c.DataSource.DefaultPeriod); err != nil {
		return fmt.Errorf("data_source.default_period: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// Period returns the configured default period.
func (c *Config) Period() model.Period {
	p, err := model.ParsePeriod(c.DataSource.DefaultPeriod)
	if err != nil {
		return model.DefaultPeriod
	}
	return p
}
