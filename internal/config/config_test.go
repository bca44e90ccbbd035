package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOBBY_API_BASE_URL", "VITE_API_BASE_URL",
		"LOBBY_HOME_API_BASE_URL", "VITE_HOME_API_BASE_URL",
		"LOBBY_POLL_SECONDS", "LOBBY_REQUEST_TIMEOUT_SECONDS",
		"LOBBY_SLIDE_INTERVAL_MS", "LOBBY_NEWS_INTERVAL_MS",
		"LOBBY_CACHE_PATH", "LOBBY_LOG_FILE", "LOBBY_LOG_LEVEL", "LOBBY_METRICS_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.PollInterval() != time.Minute {
		t.Fatalf("PollInterval = %v, want 1m", cfg.PollInterval())
	}
	if cfg.SlideInterval() != 5*time.Second {
		t.Fatalf("SlideInterval = %v, want 5s", cfg.SlideInterval())
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if !strings.HasPrefix(cfg.CachePath, home) {
		t.Fatalf("CachePath = %q, want it under HOME %q", cfg.CachePath, home)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  https://lab.example/api  "
home_api_base_url = "https://home.example"
poll_seconds = 15
slide_interval_ms = 8000
cache_path = "~/kiosk/cache.db"
log_level = "DEBUG"
metrics_addr = " :9100 "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://lab.example/api" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HomeAPIBaseURL != "https://home.example" {
		t.Fatalf("HomeAPIBaseURL = %q", cfg.HomeAPIBaseURL)
	}
	if cfg.PollSeconds != 15 || cfg.SlideIntervalMS != 8000 {
		t.Fatalf("poll=%d slide=%d", cfg.PollSeconds, cfg.SlideIntervalMS)
	}
	if cfg.NewsIntervalMS != defaultNewsMS {
		t.Fatalf("NewsIntervalMS = %d, want default %d", cfg.NewsIntervalMS, defaultNewsMS)
	}
	if cfg.CachePath != filepath.Join(home, "kiosk/cache.db") {
		t.Fatalf("CachePath = %q", cfg.CachePath)
	}
	if cfg.LogLevel != "debug" || cfg.MetricsAddr != ":9100" {
		t.Fatalf("LogLevel=%q MetricsAddr=%q", cfg.LogLevel, cfg.MetricsAddr)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "http://file.example"
poll_seconds = 15
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("LOBBY_API_BASE_URL", "http://env.example")
	t.Setenv("LOBBY_POLL_SECONDS", "30")
	t.Setenv("LOBBY_NEWS_INTERVAL_MS", "not-a-number")
	t.Setenv("VITE_HOME_API_BASE_URL", "http://vite-home.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://env.example" {
		t.Fatalf("APIBaseURL = %q, want env override", cfg.APIBaseURL)
	}
	if cfg.PollSeconds != 30 {
		t.Fatalf("PollSeconds = %d, want 30", cfg.PollSeconds)
	}
	if cfg.NewsIntervalMS != defaultNewsMS {
		t.Fatalf("NewsIntervalMS = %d, want default on bad env value", cfg.NewsIntervalMS)
	}
	if cfg.HomeAPIBaseURL != "http://vite-home.example" {
		t.Fatalf("HomeAPIBaseURL = %q, want VITE_ fallback", cfg.HomeAPIBaseURL)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LOBBY_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// godotenv never overrides variables that are already set, even to "".
	_ = os.Unsetenv("LOBBY_LOG_LEVEL")
	t.Cleanup(func() { _ = os.Unsetenv("LOBBY_LOG_LEVEL") })

	if err := LoadEnvFile(path, true); err != nil {
		t.Fatalf("LoadEnvFile returned error: %v", err)
	}
	if got := os.Getenv("LOBBY_LOG_LEVEL"); got != "warn" {
		t.Fatalf("LOBBY_LOG_LEVEL = %q, want warn", got)
	}

	missing := filepath.Join(dir, "missing.env")
	if err := LoadEnvFile(missing, false); err != nil {
		t.Fatalf("optional missing env file returned error: %v", err)
	}
	if err := LoadEnvFile(missing, true); err == nil {
		t.Fatal("required missing env file returned nil error")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.APIBaseURL = "https://saved.example"
	want.PollSeconds = 42
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.APIBaseURL != want.APIBaseURL || got.PollSeconds != 42 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad scheme", func(c *Config) { c.APIBaseURL = "ftp://x" }, "api_base_url"},
		{"no host", func(c *Config) { c.HomeAPIBaseURL = "http://" }, "home_api_base_url"},
		{"zero poll", func(c *Config) { c.PollSeconds = 0 }, "poll_seconds"},
		{"negative slide", func(c *Config) { c.SlideIntervalMS = -1 }, "slide_interval_ms"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.PollSeconds = -1
	cfg.LogLevel = "nope"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate returned nil")
	}
	if !strings.Contains(err.Error(), "poll_seconds") || !strings.Contains(err.Error(), "log_level") {
		t.Fatalf("Validate error = %q, want both problems", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
