package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/docview/internal/fetch"
)

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "DOCVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCVIEW_*). A missing file yields defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// DOCVIEW_HIGHLIGHT__STYLE -> highlight.style, DOCVIEW_TOC_PATH -> toc_path.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Configured lists replace the defaults instead of overlaying them.
	if k.Exists("scaffold.include") {
		cfg.Scaffold.Include = nil
	}
	if k.Exists("scaffold.exclude") {
		cfg.Scaffold.Exclude = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if fetch.IsRemote(c.Source) {
		if _, err := url.Parse(c.Source); err != nil {
			return fmt.Errorf("invalid source url %q: %w", c.Source, err)
		}
	}
	if strings.TrimSpace(c.TOCPath) == "" {
		return fmt.Errorf("toc_path is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.NarrowWidth <= 0 {
		return fmt.Errorf("narrow_width must be positive")
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("fetch_timeout_seconds must be non-negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
