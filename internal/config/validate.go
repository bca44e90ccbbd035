package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error

	if err := validateBaseURL(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api_base_url: %w", err))
	}
	if c.HomeAPIBaseURL != "" {
		if err := validateBaseURL(c.HomeAPIBaseURL); err != nil {
			errs = append(errs, fmt.Errorf("home_api_base_url: %w", err))
		}
	}
	if c.PollSeconds <= 0 {
		errs = append(errs, errors.New("poll_seconds must be positive"))
	}
	if c.RequestTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("request_timeout_seconds must be positive"))
	}
	if c.SlideIntervalMS < 0 {
		errs = append(errs, errors.New("slide_interval_ms must be non-negative"))
	}
	if c.NewsIntervalMS < 0 {
		errs = append(errs, errors.New("news_interval_ms must be non-negative"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
