// Package config loads and validates the application configuration from YAML
// with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Cache struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:econoscope.db?cache=shared&mode=rwc,description=Cache database connection string (empty disables caching)"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
		Disabled        bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Disable response caching entirely"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Response cache configuration"`

	Search SearchConfig `yaml:"search" json:"search" jsonschema:"description=News search provider configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article enrichment"`

	Scraper ScraperConfig `yaml:"scraper" json:"scraper" jsonschema:"description=Article content extraction configuration"`

	Curation CurationConfig `yaml:"curation" json:"curation" jsonschema:"description=Batch curation configuration"`
}

// SearchConfig holds news search provider settings
type SearchConfig struct {
	Provider     string `yaml:"provider" json:"provider" jsonschema:"default=naver,enum=naver,enum=rss,description=Search provider"`
	ClientID     string `yaml:"client_id" json:"client_id" jsonschema:"description=Naver API client ID (can use environment variable)"`
	ClientSecret string `yaml:"client_secret" json:"client_secret" jsonschema:"description=Naver API client secret (can use environment variable)"`
	MaxDisplay   int    `yaml:"max_display" json:"max_display" jsonschema:"default=100,description=Maximum articles per search request"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Search request timeout"`
}

// LLMConfig holds LLM settings for article enrichment
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (empty for api.openai.com)"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// Enabled reports whether AI features are configured. Absent credentials make
// the curator run in disabled mode rather than failing at each call site.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// ScraperConfig holds content extraction settings
type ScraperConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Fetch timeout per article"`
	MaxRedirects  int           `yaml:"max_redirects" json:"max_redirects" jsonschema:"default=5,description=Redirect limit"`
	MaxRetries    int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=2,description=Extra scrape attempts after the first failure"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum body length to consider valid"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=Overrides the default browser user agent"`
	UseFallback   bool          `yaml:"use_fallback" json:"use_fallback" jsonschema:"default=true,description=Run trafilatura when selector extraction finds nothing"`
}

// CurationConfig holds batch curation settings
type CurationConfig struct {
	MaxWorkers int `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent per-article enrichment calls"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Cache.DSN == "" && !c.Cache.Disabled {
		c.Cache.DSN = "file:econoscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Cache.MaxOpenConns == 0 {
		c.Cache.MaxOpenConns = 10
	}
	if c.Cache.MaxIdleConns == 0 {
		c.Cache.MaxIdleConns = 5
	}
	if c.Cache.ConnMaxLifetime == 0 {
		c.Cache.ConnMaxLifetime = 3600
	}

	if c.Search.Provider == "" {
		c.Search.Provider = "naver"
	}
	if c.Search.MaxDisplay == 0 {
		c.Search.MaxDisplay = 100
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 10 * time.Second
	}

	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}

	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = 30 * time.Second
	}
	if c.Scraper.MaxRedirects == 0 {
		c.Scraper.MaxRedirects = 5
	}
	if c.Scraper.MaxRetries == 0 {
		c.Scraper.MaxRetries = 2
	}
	if c.Scraper.MinTextLength == 0 {
		c.Scraper.MinTextLength = 100
	}

	if c.Curation.MaxWorkers == 0 {
		c.Curation.MaxWorkers = 5
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Search.Provider != "naver" && cfg.Search.Provider != "rss" {
		return fmt.Errorf("search.provider must be naver or rss, got %q", cfg.Search.Provider)
	}
	if cfg.Search.MaxDisplay < 1 || cfg.Search.MaxDisplay > 100 {
		return fmt.Errorf("search.max_display must be between 1 and 100")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Scraper.Timeout < time.Second {
		return fmt.Errorf("scraper.timeout must be at least 1 second")
	}
	if cfg.Scraper.MaxRetries < 0 {
		return fmt.Errorf("scraper.max_retries must be non-negative")
	}
	if cfg.Scraper.MinTextLength < 0 {
		return fmt.Errorf("scraper.min_text_length must be non-negative")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server.timeout must be at least 1 second")
	}

	if cfg.Curation.MaxWorkers < 1 {
		return fmt.Errorf("curation.max_workers must be at least 1")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
