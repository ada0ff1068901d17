package config

// Config is the top-level docview configuration, corresponding to .docview.yml.
type Config struct {
	// Source is a local directory or an http(s) base URL.
	Source              string          `yaml:"source" koanf:"source"`
	TOCPath             string          `yaml:"toc_path" koanf:"toc_path"`
	Port                int             `yaml:"port" koanf:"port"`
	NarrowWidth         int             `yaml:"narrow_width" koanf:"narrow_width"`
	Highlight           HighlightConfig `yaml:"highlight" koanf:"highlight"`
	FetchTimeoutSeconds int             `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	LogLevel            string          `yaml:"log_level" koanf:"log_level"`
	AllowAllOrigins     bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Scaffold            ScaffoldConfig  `yaml:"scaffold" koanf:"scaffold"`
}

// HighlightConfig controls code block highlighting.
type HighlightConfig struct {
	Style  string `yaml:"style" koanf:"style"`
	Inline bool   `yaml:"inline" koanf:"inline"`
}

// ScaffoldConfig holds the globs used by `docview toc scaffold`.
type ScaffoldConfig struct {
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
