package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Browser   BrowserConfig   `yaml:"browser"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telegram  TelegramConfig  `yaml:"telegram"`
}

type UpstreamConfig struct {
	BaseURL   string            `yaml:"base_url"`
	UserAgent string            `yaml:"user_agent"`
	Timeout   time.Duration     `yaml:"timeout"`
	Headers   map[string]string `yaml:"headers"`
}

type BrowserConfig struct {
	Enabled  bool          `yaml:"enabled"`
	BoardURL string        `yaml:"board_url"` // page to render; %s is replaced with the date
	Timeout  time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Backend   string        `yaml:"backend"` // "memory" or "redis"
	BoardTTL  time.Duration `yaml:"board_ttl"`
	DetailTTL time.Duration `yaml:"detail_ttl"`
	Redis     RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type RateLimitConfig struct {
	BoardDelay  time.Duration `yaml:"board_delay"`
	DetailDelay time.Duration `yaml:"detail_delay"`
}

type ExtractorConfig struct {
	MaxPages int `yaml:"max_pages"`
	// AllowSyntheticOdds fills missing 1X2 odds with generated plausible
	// values and marks the record synthetic. Off unless a demo explicitly
	// wants it.
	AllowSyntheticOdds bool `yaml:"allow_synthetic_odds"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type TelegramConfig struct {
	Enabled  bool          `yaml:"enabled"`
	BotToken string        `yaml:"bot_token"`
	ChatID   int64         `yaml:"chat_id"`
	Cooldown time.Duration `yaml:"cooldown"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 12 * time.Second
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = "betboard/1.0 (+https://github.com/avolkov/betboard)"
	}
	if c.Browser.Timeout <= 0 {
		c.Browser.Timeout = 30 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.BoardTTL <= 0 {
		c.Cache.BoardTTL = 5 * time.Minute
	}
	if c.Cache.DetailTTL <= 0 {
		c.Cache.DetailTTL = 10 * time.Minute
	}
	if c.RateLimit.BoardDelay <= 0 {
		c.RateLimit.BoardDelay = 2000 * time.Millisecond
	}
	if c.RateLimit.DetailDelay <= 0 {
		c.RateLimit.DetailDelay = 1500 * time.Millisecond
	}
	if c.Extractor.MaxPages <= 0 {
		c.Extractor.MaxPages = 5
	}
	if c.Telegram.Cooldown <= 0 {
		c.Telegram.Cooldown = 15 * time.Minute
	}
}
