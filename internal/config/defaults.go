package config

import (
	"time"

	"github.com/ziadkadry99/docview/internal/markdown"
	"github.com/ziadkadry99/docview/internal/toc"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".docview.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source:      "docs",
		TOCPath:     toc.DefaultPath,
		Port:        8080,
		NarrowWidth: viewer.DefaultNarrowWidth,
		Highlight: HighlightConfig{
			Style: markdown.DefaultStyle,
		},
		FetchTimeoutSeconds: 10,
		LogLevel:            "info",
		Scaffold: ScaffoldConfig{
			Include: []string{"**/*.md"},
			Exclude: append([]string(nil), toc.DefaultScaffoldExcludes...),
		},
	}
}

// FetchTimeout returns the per-request fetch timeout. Zero disables it.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ScaffoldOptions converts the scaffold globs for toc.Scaffold.
func (c *Config) ScaffoldOptions() toc.ScaffoldOptions {
	return toc.ScaffoldOptions{Include: c.Scaffold.Include, Exclude: c.Scaffold.Exclude}
}
