package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.Feed.URL = strings.TrimSpace(c.Feed.URL)
	c.Feed.UserAgent = strings.TrimSpace(c.Feed.UserAgent)
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = defaultUserAgent
	}
	c.Output.Path = strings.TrimSpace(c.Output.Path)
	c.Output.Title = strings.TrimSpace(c.Output.Title)
	if c.Output.Title == "" {
		c.Output.Title = defaultOutputTitle
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"paths.cache_dir", &c.Paths.CacheDir},
		{"paths.log_dir", &c.Paths.LogDir},
		{"output.path", &c.Output.Path},
	} {
		expanded, err := expandPath(*field.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

// ExpandPath resolves a leading tilde against the user home directory and
// cleans the result. Empty input stays empty.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Clean(path), nil
}
