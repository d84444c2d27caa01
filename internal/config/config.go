// Load envs from .env
// Load YAML config
// Override secrets from env
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// ProtocolCDP and ProtocolPlaywright select how a remote browser endpoint is dialed.
const (
	ProtocolCDP        = "cdp"
	ProtocolPlaywright = "playwright"
)

// the spoofed identity sent with every page request
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type BrowserConfig struct {
	WSEndpoint        string  `yaml:"ws_endpoint"`
	Token             string  `yaml:"token"`
	Protocol          string  `yaml:"protocol"`
	Headless          bool    `yaml:"headless"`
	UserAgent         string  `yaml:"user_agent"`
	Locale            string  `yaml:"locale"`
	Stealth           bool    `yaml:"stealth"`
	SessionsPerMinute float64 `yaml:"sessions_per_minute"`
	CookiesPath       string  `yaml:"cookies_path"`
}

type GlintsConfig struct {
	BaseURL         string   `yaml:"base_url"`
	SearchPath      string   `yaml:"search_path"`
	Country         string   `yaml:"country"`
	LocationName    string   `yaml:"location_name"`
	MaxResults      int      `yaml:"max_results"`
	MaxTags         int      `yaml:"max_tags"`
	PlaceholderTags []string `yaml:"placeholder_tags"`
	KnownLocations  []string `yaml:"known_locations"`
}

type ScrollConfig struct {
	StepPx      int           `yaml:"step_px"`
	Interval    time.Duration `yaml:"interval"`
	MaxSteps    int           `yaml:"max_steps"`
	MaxDuration time.Duration `yaml:"max_duration"`
}

type TimeoutConfig struct {
	Navigation time.Duration `yaml:"navigation"`
	CardWait   time.Duration `yaml:"card_wait"`
	Pipeline   time.Duration `yaml:"pipeline"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
}

type Config struct {
	Browser  BrowserConfig `yaml:"browser"`
	Glints   GlintsConfig  `yaml:"glints"`
	Scroll   ScrollConfig  `yaml:"scroll"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Retry    RetryConfig   `yaml:"retry"`

	Port string `yaml:"port" env:"PORT"`

	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Paths
	OutputDir     string `yaml:"output_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	Screenshots   bool   `yaml:"screenshots"`
}

// Default returns the configuration used when no file or env overrides are present.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Protocol:          ProtocolCDP,
			Headless:          true,
			UserAgent:         defaultUserAgent,
			Locale:            "id-ID",
			SessionsPerMinute: 30,
		},
		Glints: GlintsConfig{
			BaseURL:         "https://glints.com",
			SearchPath:      "/id/opportunities/jobs/explore",
			Country:         "ID",
			LocationName:    "All Cities/Provinces",
			MaxResults:      8,
			MaxTags:         3,
			PlaceholderTags: []string{"Perusahaan Premium", "Premium Company"},
			KnownLocations:  defaultKnownLocations(),
		},
		Scroll: ScrollConfig{
			StepPx:      500,
			Interval:    300 * time.Millisecond,
			MaxSteps:    120,
			MaxDuration: 25 * time.Second,
		},
		Timeouts: TimeoutConfig{
			Navigation: 30 * time.Second,
			CardWait:   15 * time.Second,
			Pipeline:   60 * time.Second,
		},
		Retry: RetryConfig{
			Attempts: 0,
			Backoff:  2 * time.Second,
		},
		Port:          "8080",
		OutputDir:     "logs",
		ScreenshotDir: "logs/screenshots",
	}
}

func defaultKnownLocations() []string {
	return []string{
		"Remote", "Hybrid", "Indonesia", "Jakarta", "Kota", "Kabupaten", "DKI",
		"Bandung", "Surabaya", "Yogyakarta", "Semarang", "Medan", "Bali", "Denpasar",
		"Tangerang", "Bekasi", "Depok", "Bogor", "Malang", "Makassar", "Batam",
		"Palembang", "Pekanbaru", "Padang", "Balikpapan", "Samarinda", "Pontianak",
		"Banjarmasin", "Manado", "Cirebon", "Solo", "Surakarta", "Lampung",
		"Jawa", "Sumatera", "Kalimantan", "Sulawesi", "Banten", "Riau", "Papua",
		"Singapore", "Malaysia", "Vietnam", "Taiwan",
	}
}

// Load reads .env, the YAML file at path (missing file means defaults) and env overrides,
// then validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("SCRAPER_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		log.Printf("⚠️ Could not read %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BROWSER_WS_ENDPOINT"); v != "" {
		c.Browser.WSEndpoint = v
	}
	if v := os.Getenv("BROWSER_TOKEN"); v != "" {
		c.Browser.Token = v
	}
	if v := os.Getenv("BROWSER_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BROWSER_HEADLESS: %w", err)
		}
		c.Browser.Headless = headless
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	addErr := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch c.Browser.Protocol {
	case ProtocolCDP, ProtocolPlaywright:
	default:
		addErr("browser.protocol must be %q or %q, got %q", ProtocolCDP, ProtocolPlaywright, c.Browser.Protocol)
	}
	if c.Browser.SessionsPerMinute < 0 {
		addErr("browser.sessions_per_minute must be >= 0")
	}
	if strings.TrimSpace(c.Browser.UserAgent) == "" {
		addErr("browser.user_agent is required")
	}

	if u, err := url.Parse(c.Glints.BaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		addErr("glints.base_url must be an absolute URL, got %q", c.Glints.BaseURL)
	}
	if c.Glints.MaxResults < 1 || c.Glints.MaxResults > 9 {
		addErr("glints.max_results must be between 1 and 9, got %d", c.Glints.MaxResults)
	}
	if c.Glints.MaxTags < 0 {
		addErr("glints.max_tags must be >= 0")
	}

	if c.Scroll.StepPx <= 0 {
		addErr("scroll.step_px must be > 0")
	}
	if c.Scroll.Interval <= 0 {
		addErr("scroll.interval must be > 0")
	}
	if c.Scroll.MaxSteps <= 0 && c.Scroll.MaxDuration <= 0 {
		addErr("scroll needs max_steps or max_duration to bound infinite pages")
	}

	if c.Timeouts.Navigation <= 0 {
		addErr("timeouts.navigation must be > 0")
	}
	if c.Timeouts.CardWait <= 0 {
		addErr("timeouts.card_wait must be > 0")
	}
	if c.Timeouts.Pipeline <= 0 {
		addErr("timeouts.pipeline must be > 0")
	}

	if c.Retry.Attempts < 0 {
		addErr("retry.attempts must be >= 0")
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		addErr("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	return errors.Join(errs...)
}

// TelegramEnabled reports whether scraped jobs should be pushed to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
