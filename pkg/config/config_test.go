package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  listen: \":9090\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "naver", cfg.Search.Provider)
	assert.Equal(t, 100, cfg.Search.MaxDisplay)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 30*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 5, cfg.Scraper.MaxRedirects)
	assert.Equal(t, 2, cfg.Scraper.MaxRetries)
	assert.Equal(t, 100, cfg.Scraper.MinTextLength)
	assert.Equal(t, 5, cfg.Curation.MaxWorkers)
	assert.NotEmpty(t, cfg.Cache.DSN)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":8888"
  timeout: 15s
cache:
  dsn: "file:test.db?mode=rwc"
search:
  provider: naver
  client_id: my-id
  client_secret: my-secret
  max_display: 20
llm:
  api_key: sk-test
  model: gpt-4o
  temperature: 0.7
scraper:
  timeout: 10s
  max_retries: 1
curation:
  max_workers: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8888", cfg.Server.Listen)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:test.db?mode=rwc", cfg.Cache.DSN)
	assert.Equal(t, "my-id", cfg.Search.ClientID)
	assert.Equal(t, 20, cfg.Search.MaxDisplay)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.True(t, cfg.LLM.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 1, cfg.Scraper.MaxRetries)
	assert.Equal(t, 3, cfg.Curation.MaxWorkers)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_NAVER_ID", "env-client-id")
	t.Setenv("TEST_LLM_KEY", "env-api-key")

	path := writeConfig(t, `
search:
  client_id: ${TEST_NAVER_ID}
llm:
  api_key: ${TEST_LLM_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-client-id", cfg.Search.ClientID)
	assert.Equal(t, "env-api-key", cfg.LLM.APIKey)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad provider", content: "search:\n  provider: bing\n", wantErr: "search.provider"},
		{name: "display too big", content: "search:\n  max_display: 500\n", wantErr: "search.max_display"},
		{name: "bad temperature", content: "llm:\n  temperature: 3.0\n", wantErr: "llm.temperature"},
		{name: "scraper timeout too small", content: "scraper:\n  timeout: 100ms\n", wantErr: "scraper.timeout"},
		{name: "server timeout too small", content: "server:\n  timeout: 10ms\n", wantErr: "server.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not a map\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.False(t, cfg.LLM.Enabled())

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)
}
