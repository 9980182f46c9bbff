package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Rates    RatesConfig    `yaml:"rates"`
	Telegram TelegramConfig `yaml:"telegram"`
	Probe    ProbeConfig    `yaml:"probe"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RatesConfig struct {
	// ConsolidationCurrency is the project-level reporting currency.
	ConsolidationCurrency string `yaml:"consolidation_currency"`
	// CacheTTL bounds how stale a cached BRL rate may get before the
	// provider falls through to Postgres again (e.g. "5m").
	CacheTTL string `yaml:"cache_ttl"`
}

// CacheTTLDuration parses the configured TTL, defaulting to 5 minutes.
func (c RatesConfig) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type ProbeConfig struct {
	// BalanceSelector is the CSS selector of the balance element on the
	// bookmaker's cashier page.
	BalanceSelector string `yaml:"balance_selector"`
	Timeout         string `yaml:"timeout"`
}

// TimeoutDuration parses the configured probe timeout, defaulting to 30s.
func (c ProbeConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

type LoggingConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
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

	if config.Rates.ConsolidationCurrency == "" {
		config.Rates.ConsolidationCurrency = "BRL"
	}
	if config.HTTP.Addr == "" {
		config.HTTP.Addr = ":8081"
	}

	return &config, nil
}
