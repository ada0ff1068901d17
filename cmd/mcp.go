package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/docview/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the table of contents, title search and raw documents to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fetcher, err := newFetcher(cfg)
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "docview MCP server started on stdio (source=%s)\n", cfg.Source)

		return mcpserver.NewServer(fetcher, cfg.TOCPath, logger).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
