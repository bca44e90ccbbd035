package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the kiosk settings read from config.toml.
type Config struct {
	APIBaseURL            string `toml:"api_base_url"`
	HomeAPIBaseURL        string `toml:"home_api_base_url"`
	PollSeconds           int    `toml:"poll_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	SlideIntervalMS       int    `toml:"slide_interval_ms"`
	NewsIntervalMS        int    `toml:"news_interval_ms"`
	CachePath             string `toml:"cache_path"`
	LogFile               string `toml:"log_file"`
	LogLevel              string `toml:"log_level"`
	MetricsAddr           string `toml:"metrics_addr"`
}

const (
	defaultConfigPath     = "~/.config/lobby/config.toml"
	defaultAPIBaseURL     = "http://127.0.0.1:8000"
	defaultPollSeconds    = 60
	defaultTimeoutSeconds = 10
	defaultSlideMS        = 5000
	defaultNewsMS         = 3000
	defaultCachePath      = "~/.local/state/lobby/cache.db"
	defaultLogFile        = "~/.local/state/lobby/lobby.log"
	defaultLogLevel       = "info"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIBaseURL:            defaultAPIBaseURL,
		PollSeconds:           defaultPollSeconds,
		RequestTimeoutSeconds: defaultTimeoutSeconds,
		SlideIntervalMS:       defaultSlideMS,
		NewsIntervalMS:        defaultNewsMS,
		CachePath:             defaultCachePath,
		LogFile:               defaultLogFile,
		LogLevel:              defaultLogLevel,
	}
}

// Load reads the config file, falling back to defaults when it is missing, and
// applies LOBBY_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	cfg.normalize()
	return cfg, nil
}

// LoadEnvFile exports the variables in a dotenv file without overriding ones
// already set. A missing file is only an error when required is true.
func LoadEnvFile(path string, required bool) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := godotenv.Load(resolved); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Save writes cfg as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	bytes, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolvedPath returns the absolute config path Load would read.
func ResolvedPath(path string) string {
	resolved, err := resolvePath(path)
	if err != nil {
		return path
	}
	return resolved
}

// PollInterval is the delay between successful polls.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// RequestTimeout bounds one content request.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SlideInterval is the hero and paper autoplay period.
func (c Config) SlideInterval() time.Duration {
	return time.Duration(c.SlideIntervalMS) * time.Millisecond
}

// NewsInterval is the news ticker period.
func (c Config) NewsInterval() time.Duration {
	return time.Duration(c.NewsIntervalMS) * time.Millisecond
}

func (c *Config) normalize() {
	c.APIBaseURL = orDefault(c.APIBaseURL, defaultAPIBaseURL)
	c.HomeAPIBaseURL = strings.TrimSpace(c.HomeAPIBaseURL)
	c.LogLevel = strings.ToLower(orDefault(c.LogLevel, defaultLogLevel))
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	if c.PollSeconds == 0 {
		c.PollSeconds = defaultPollSeconds
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = defaultTimeoutSeconds
	}
	if c.SlideIntervalMS == 0 {
		c.SlideIntervalMS = defaultSlideMS
	}
	if c.NewsIntervalMS == 0 {
		c.NewsIntervalMS = defaultNewsMS
	}
	c.CachePath = mustExpand(orDefault(c.CachePath, defaultCachePath))
	c.LogFile = mustExpand(orDefault(c.LogFile, defaultLogFile))
}

func applyEnvOverrides(cfg *Config) {
	if v := firstEnv("LOBBY_API_BASE_URL", "VITE_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := firstEnv("LOBBY_HOME_API_BASE_URL", "VITE_HOME_API_BASE_URL"); v != "" {
		cfg.HomeAPIBaseURL = v
	}
	envInt("LOBBY_POLL_SECONDS", &cfg.PollSeconds)
	envInt("LOBBY_REQUEST_TIMEOUT_SECONDS", &cfg.RequestTimeoutSeconds)
	envInt("LOBBY_SLIDE_INTERVAL_MS", &cfg.SlideIntervalMS)
	envInt("LOBBY_NEWS_INTERVAL_MS", &cfg.NewsIntervalMS)
	if v := os.Getenv("LOBBY_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("LOBBY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LOBBY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOBBY_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = i
		}
	}
}

func orDefault(v, def string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return def
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
