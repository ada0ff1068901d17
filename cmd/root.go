package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/config"
	"github.com/ziadkadry99/docview/internal/logging"
)

var (
	cfgFile string
	verbose bool

	logger        = zap.NewNop()
	restoreStdLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "docview",
	Short: "Browse a markdown documentation tree in the browser",
	Long: `docview serves a single-page documentation browser for a tree of markdown
files described by a YAML table of contents. The source can be a local
directory or any HTTP origin. Titles are searchable, code blocks are
highlighted, and the same tree is available to AI agents over MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setLogLevel("info")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
		restoreStdLog()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setLogLevel replaces the package logger. --verbose always wins.
func setLogLevel(level string) error {
	if verbose {
		level = "debug"
	}
	l, err := logging.New(level)
	if err != nil {
		return err
	}
	restoreStdLog()
	logger = l
	restoreStdLog = zap.RedirectStdLog(l)
	return nil
}
