package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Validate ensures the configuration is usable. An empty TMDB API key is
// accepted: it means "not yet configured" and disables processing.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	parsed, err := url.Parse(c.TMDB.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("tmdb.base_url must be an absolute URL, got %q", c.TMDB.BaseURL)
	}
	if c.TMDB.RequestsPerSecond < 0 {
		return errors.New("tmdb.requests_per_second must be zero (unlimited) or positive")
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		return errors.New("tmdb.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAudio() error {
	for _, entry := range strings.Split(c.Audio.LanguagesToKeep, ",") {
		code := strings.TrimSpace(entry)
		if code == "" {
			continue
		}
		for _, r := range code {
			if !unicode.IsLetter(r) && r != '-' {
				return fmt.Errorf("audio.languages_to_keep: invalid language code %q", code)
			}
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		return errors.New("cache.path must be set when the cache is enabled")
	}
	if c.Cache.TTLHours < 0 {
		return errors.New("cache.ttl_hours must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
