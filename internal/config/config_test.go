package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"BROWSER_WS_ENDPOINT", "BROWSER_TOKEN", "BROWSER_HEADLESS", "PORT", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "SCRAPER_CONFIG"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://glints.com", cfg.Glints.BaseURL)
	assert.Equal(t, 8, cfg.Glints.MaxResults)
	assert.Equal(t, 3, cfg.Glints.MaxTags)
	assert.Equal(t, 500, cfg.Scroll.StepPx)
	assert.Equal(t, 300*time.Millisecond, cfg.Scroll.Interval)
	assert.Equal(t, 15*time.Second, cfg.Timeouts.CardWait)
	assert.True(t, cfg.Browser.Headless)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
browser:
  ws_endpoint: wss://chrome.example.com
  protocol: playwright
glints:
  max_results: 9
  placeholder_tags: ["Sponsored"]
scroll:
  interval: 150ms
timeouts:
  pipeline: 45s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "wss://chrome.example.com", cfg.Browser.WSEndpoint)
	assert.Equal(t, ProtocolPlaywright, cfg.Browser.Protocol)
	assert.True(t, cfg.Browser.Headless, "unset fields keep their defaults")
	assert.Equal(t, 9, cfg.Glints.MaxResults)
	assert.Equal(t, []string{"Sponsored"}, cfg.Glints.PlaceholderTags)
	assert.Equal(t, 150*time.Millisecond, cfg.Scroll.Interval)
	assert.Equal(t, 45*time.Second, cfg.Timeouts.Pipeline)
	assert.Equal(t, 500, cfg.Scroll.StepPx)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "browser:\n  token: from-file\n")
	t.Setenv("BROWSER_TOKEN", "from-env")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Browser.Token)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "glints: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"cap above nine", func(c *Config) { c.Glints.MaxResults = 12 }, "glints.max_results"},
		{"cap of zero", func(c *Config) { c.Glints.MaxResults = 0 }, "glints.max_results"},
		{"relative base url", func(c *Config) { c.Glints.BaseURL = "/glints" }, "glints.base_url"},
		{"unknown protocol", func(c *Config) { c.Browser.Protocol = "bidi" }, "browser.protocol"},
		{"unbounded scroll", func(c *Config) { c.Scroll.MaxSteps = 0; c.Scroll.MaxDuration = 0 }, "bound infinite pages"},
		{"zero card wait", func(c *Config) { c.Timeouts.CardWait = 0 }, "timeouts.card_wait"},
		{"telegram without chat", func(c *Config) { c.TelegramToken = "x" }, "TELEGRAM_CHAT_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Scroll.StepPx = 0
	cfg.Retry.Attempts = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scroll.step_px")
	assert.Contains(t, err.Error(), "retry.attempts")
}
