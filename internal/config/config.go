// Package config reads the bot configuration from the environment and .env.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var (
	ErrMissingToken  = errors.New("BOT_TOKEN is required")
	ErrMissingUserID = errors.New("USER_ID is required when BROADCAST_INTERVAL is set")
)

const (
	defaultPrefix   = "!"
	defaultTrigger  = "yp"
	defaultLogLevel = log.InfoLevel
)

// Config — всё, что нужно процессу; собирается один раз в main.
type Config struct {
	Token   string
	Prefix  string
	Trigger string

	// UserID — получатель рассылки в личку, пустой если рассылка выключена.
	UserID         string
	BroadcastEvery time.Duration

	LogLevel log.Level
}

// Load читает .env файлы (если есть) и переменные окружения.
// Переменные окружения имеют приоритет над .env.
func Load(envFiles ...string) (*Config, error) {
	fileVals := map[string]string{}
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		vals, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range vals {
			if _, ok := fileVals[k]; !ok {
				fileVals[k] = v
			}
		}
	}
	return build(envLookup(fileVals))
}

func build(get func(string) string) (*Config, error) {
	cfg := &Config{
		Token:          strings.TrimSpace(get("BOT_TOKEN")),
		Prefix:         getEnvString(get, "BOT_PREFIX", defaultPrefix),
		Trigger:        strings.ToLower(getEnvString(get, "BOT_TRIGGER", defaultTrigger)),
		UserID:         strings.TrimSpace(get("USER_ID")),
		BroadcastEvery: getEnvDuration(get, "BROADCAST_INTERVAL", 0),
		LogLevel:       defaultLogLevel,
	}

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	if cfg.UserID != "" {
		if _, err := strconv.ParseUint(cfg.UserID, 10, 64); err != nil {
			return nil, fmt.Errorf("USER_ID must be numeric: %w", err)
		}
	}
	if cfg.BroadcastEvery > 0 && cfg.UserID == "" {
		return nil, ErrMissingUserID
	}

	if raw := get("LOG_LEVEL"); raw != "" {
		lvl, err := log.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// envLookup — сначала реальное окружение, потом значения из .env.
func envLookup(fileVals map[string]string) func(string) string {
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVals[key]
	}
}

func getEnvString(get func(string) string, key, defaultValue string) string {
	if value := get(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration понимает "30s", "1h" и просто число секунд.
func getEnvDuration(get func(string) string, key string, defaultValue time.Duration) time.Duration {
	if value := get(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
