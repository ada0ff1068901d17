package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/toc"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search document titles",
	Long: fmt.Sprintf(`Prints every document whose title contains the query, case-insensitively,
in table of contents order. Queries shorter than %d characters list everything.`, toc.MinQueryLength),
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

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
	results := toc.BuildIndex(tree)
	if toc.ShouldFilter(query) {
		results = toc.Search(results, query)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No results found")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.Title, r.Href)
	}
	return tw.Flush()
}
