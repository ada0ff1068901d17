package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/config"
	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/markdown"
)

// loadConfig loads and validates the config, then applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if err := setLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newFetcher creates the document fetcher for the configured source.
func newFetcher(cfg *config.Config) (fetch.Fetcher, error) {
	f, err := fetch.New(cfg.Source,
		fetch.WithTimeout(cfg.FetchTimeout()),
		fetch.WithUserAgent("docview/"+Version),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("documentation source", zap.String("source", cfg.Source), zap.Bool("remote", fetch.IsRemote(cfg.Source)))
	return fetch.NewLoggingFetcher(f, logger), nil
}

// newRenderer returns the converter and highlighter for the configured
// highlight mode. Inline highlighting happens inside goldmark, so the
// post-render pass is skipped.
func newRenderer(cfg *config.Config) (markdown.Converter, markdown.Highlighter) {
	conv := markdown.NewConverter(markdown.ConverterOptions{
		InlineHighlight: cfg.Highlight.Inline,
		Style:           cfg.Highlight.Style,
	})
	if cfg.Highlight.Inline {
		return conv, markdown.NopHighlighter{}
	}
	return conv, markdown.NewChromaHighlighter(cfg.Highlight.Style)
}

// projectTitle names the site after the working directory.
func projectTitle() string {
	wd, err := os.Getwd()
	if err != nil {
		return "Documentation"
	}
	name := filepath.Base(wd)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "Documentation"
	}
	return name
}
