package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabaseURL      = "data/tasks.db"
	defaultLogLevel         = "info"
	defaultDispatchInterval = time.Minute
)

// Config keeps runtime settings for the task manager.
type Config struct {
	DatabaseURL      string
	LogLevel         string
	LogPretty        bool
	DispatchInterval time.Duration
	TelegramToken    string
	TelegramChatID   int64
}

// TelegramEnabled reports whether reminders go to a Telegram chat.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:      strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogPretty:     parseBool(strings.TrimSpace(os.Getenv("LOG_PRETTY")), true),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	interval, err := parseInterval(strings.TrimSpace(os.Getenv("DISPATCH_INTERVAL")))
	if err != nil {
		return cfg, err
	}
	cfg.DispatchInterval = interval

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseInterval(raw string) (time.Duration, error) {
	if raw == "" {
		return defaultDispatchInterval, nil
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("DISPATCH_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("DISPATCH_INTERVAL must be positive, got %s", raw)
	}
	return interval, nil
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
