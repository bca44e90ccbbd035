// Package config loads the kiosk configuration.
//
// # Resolution order
//
//  1. Built-in defaults (Default)
//  2. ~/.config/lobby/config.toml, or the path given with --config
//  3. Variables from a dotenv file (LoadEnvFile, optional, never overriding
//     variables already set)
//  4. LOBBY_* environment variables; VITE_API_BASE_URL and
//     VITE_HOME_API_BASE_URL are honoured so an existing web kiosk .env works
//     unchanged
//  5. Command line flags, applied by the caller
//
// Blank strings and zero durations fall back to defaults. Paths accept a
// leading ~ and are made absolute.
//
// # Example
//
//	api_base_url      = "https://lab.example/api"
//	home_api_base_url = "https://lab.example/home-api"
//	poll_seconds      = 60
//	slide_interval_ms = 5000
//	news_interval_ms  = 3000
//	cache_path        = "~/.local/state/lobby/cache.db"
//	log_file          = "~/.local/state/lobby/lobby.log"
//	log_level         = "info"
//	metrics_addr      = "127.0.0.1:9464"
//
// Validate reports every problem at once via errors.Join.
package config
