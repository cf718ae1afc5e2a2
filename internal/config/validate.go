package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.URL == "" {
		return errors.New("feed.url must be set")
	}
	parsed, err := url.Parse(c.Feed.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("feed.url is not a valid absolute URL: %q", c.Feed.URL)
	}
	if c.Feed.MaxEpisodes <= 0 {
		return errors.New("feed.max_episodes must be positive")
	}
	if c.Feed.RequestTimeout <= 0 {
		return errors.New("feed.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Path == "" {
		return errors.New("output.path must be set")
	}
	return nil
}

// validateLLM only checks fields needed once a credential is present; a
// missing api_key is the documented degrade path, not an error.
func (c *Config) validateLLM() error {
	if c.LLM.APIKey == "" {
		return nil
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set when llm.api_key is configured")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set when llm.api_key is configured")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
