package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/toc"
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "Work with the table of contents",
}

var tocScaffoldCmd = &cobra.Command{
	Use:   "scaffold [dir]",
	Short: "Generate a table of contents from a directory of markdown files",
	Long: `Walks dir for markdown files and writes a toc.yml that mirrors the directory
layout. Titles come from each file's first heading, falling back to the file name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTOCScaffold,
}

func init() {
	tocScaffoldCmd.Flags().StringP("output", "o", "", "output file (defaults to <dir>/toc.yml, - for stdout)")
	tocScaffoldCmd.Flags().Bool("force", false, "overwrite an existing file")
	tocCmd.AddCommand(tocScaffoldCmd)
	rootCmd.AddCommand(tocCmd)
}

func runTOCScaffold(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.Source
	if len(args) == 1 {
		dir = args[0]
	}
	if fetch.IsRemote(dir) {
		return fmt.Errorf("cannot scaffold a remote source %s: pass a local directory", dir)
	}

	tree, err := toc.Scaffold(dir, cfg.ScaffoldOptions())
	if err != nil {
		return err
	}
	data, err := toc.Marshal(tree)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = filepath.Join(dir, cfg.TOCPath)
	}
	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", output)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	logger.Debug("scaffolded table of contents", zap.String("dir", dir), zap.Int("links", toc.Count(tree)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d documents)\n", output, toc.Count(tree))
	return nil
}
