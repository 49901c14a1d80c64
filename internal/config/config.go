// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath       = "configs/config.yaml"
	DefaultAPIBaseURL = "http://localhost:3000"
	DefaultAPITimeout = 10 * time.Second
	DefaultLogLevel   = "info"
	DefaultServerAddr = ":3000"
)

type Config struct {
	//Job directory
	APIBaseURL string
	APITimeout time.Duration
	LogLevel   string
	//Telegram announcements, both required to enable
	TelegramToken  string
	TelegramChatID int64
	//Stand-in server
	ServerAddr   string
	DatabaseURL  string
	DatabasePath string
	SeedPath     string
}

type fileConfig struct {
	APIBaseURL     string `yaml:"api_base_url"`
	APITimeout     string `yaml:"api_timeout"`
	LogLevel       string `yaml:"log_level"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	ServerAddr     string `yaml:"server_addr"`
	DatabaseURL    string `yaml:"database_url"`
	DatabasePath   string `yaml:"database_path"`
	SeedPath       string `yaml:"seed_path"`
}

// Load reads .env, then the YAML file named by JOBBOARD_CONFIG (or
// configs/config.yaml), then environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("JOBBOARD_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom is Load without .env, reading the YAML file at path. A missing file is fine.
func LoadFrom(path string) (*Config, error) {
	fc := fileConfig{}

	//Load yaml config
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	//Override with env vars
	overrideString(&fc.APIBaseURL, "JOBBOARD_API_BASE_URL")
	overrideString(&fc.APITimeout, "JOBBOARD_API_TIMEOUT")
	overrideString(&fc.LogLevel, "LOG_LEVEL")
	overrideString(&fc.TelegramToken, "TELEGRAM_BOT_TOKEN")
	overrideString(&fc.ServerAddr, "JOBBOARD_SERVER_ADDR")
	overrideString(&fc.DatabaseURL, "DATABASE_URL")
	overrideString(&fc.DatabasePath, "JOBBOARD_DB_PATH")
	overrideString(&fc.SeedPath, "JOBBOARD_SEED_PATH")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		fc.TelegramChatID = id
	}

	cfg := &Config{
		APIBaseURL:     strings.TrimSpace(fc.APIBaseURL),
		LogLevel:       strings.ToLower(strings.TrimSpace(fc.LogLevel)),
		TelegramToken:  fc.TelegramToken,
		TelegramChatID: fc.TelegramChatID,
		ServerAddr:     fc.ServerAddr,
		DatabaseURL:    fc.DatabaseURL,
		DatabasePath:   fc.DatabasePath,
		SeedPath:       fc.SeedPath,
	}

	//Set default values if not set
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultServerAddr
	}
	cfg.APITimeout = DefaultAPITimeout
	if fc.APITimeout != "" {
		d, err := time.ParseDuration(fc.APITimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api_timeout %q: %w", fc.APITimeout, err)
		}
		cfg.APITimeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: want an http(s) URL", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", c.APITimeout)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// TelegramEnabled reports whether posted jobs should be announced.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
