package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the documentation source and writes the config file (.docview.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
