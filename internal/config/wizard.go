package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/docview/internal/fetch"
)

// docDirCandidates are checked, in order, for an existing documentation tree.
var docDirCandidates = []string{"docs", "doc", "documentation", "content"}

// detectSource returns the first candidate directory that exists.
func detectSource() string {
	for _, dir := range docDirCandidates {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docview! Let's configure your documentation browser.")
	fmt.Println()

	cfg := DefaultConfig()

	sourcePrompt := promptui.Prompt{
		Label:   "Documentation source (directory or http(s) URL)",
		Default: detectSource(),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("source is required")
			}
			return nil
		},
	}
	source, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	cfg.Source = strings.TrimSpace(source)

	tocPrompt := promptui.Prompt{
		Label:   "Table of contents file (relative to the source)",
		Default: cfg.TOCPath,
	}
	tocPath, err := tocPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("toc path: %w", err)
	}
	cfg.TOCPath = strings.TrimSpace(tocPath)

	portPrompt := promptui.Prompt{
		Label:   "Port for docview serve",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	stylePrompt := promptui.Select{
		Label: "Code highlighting style",
		Items: []string{"github", "monokai", "dracula", "solarized-light", "nord"},
	}
	_, style, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}
	cfg.Highlight.Style = style

	if !fetch.IsRemote(cfg.Source) {
		excludePrompt := promptui.Prompt{
			Label:   "Extra scaffold exclude patterns (comma-separated, leave blank for defaults)",
			Default: "",
		}
		excludeStr, err := excludePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("exclude patterns: %w", err)
		}
		cfg.Scaffold.Exclude = append(cfg.Scaffold.Exclude, splitAndTrim(excludeStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops blank items.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
