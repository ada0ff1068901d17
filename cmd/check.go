package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/check"
	"github.com/ziadkadry99/docview/internal/progress"
	"github.com/ziadkadry99/docview/internal/toc"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every document in the table of contents can be fetched",
	Long:  `Loads the table of contents and fetches every linked document. Exits non-zero when any document is missing or unreachable.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("concurrency", check.DefaultConcurrency, "maximum parallel fetches")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	tree, err := toc.Load(cmd.Context(), fetcher, cfg.TOCPath)
	if err != nil {
		return err
	}
	hrefs := toc.Hrefs(tree)
	logger.Debug("checking documents", zap.Int("links", toc.Count(tree)), zap.Int("distinct", len(hrefs)))

	res, err := check.Run(cmd.Context(), fetcher, hrefs, progress.NewReporter(os.Stderr), concurrency)
	if res.OK() && err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "All %d documents OK\n", res.Checked)
		return nil
	}
	for _, f := range res.Failures {
		fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", f.Path, f.Err)
	}
	return fmt.Errorf("%d of %d documents failed: %w", len(res.Failures), res.Checked, err)
}
