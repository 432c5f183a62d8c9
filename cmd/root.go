package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adalundhe/atlas/core/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas - performance coaching and goal planning engine",
	Long: `Atlas scores KPI drift, gates coaching messages behind the quiet-mode
policy, and decomposes free-text goals into project plans. Message
delivery (Slack, email) is left to the caller; atlas produces the
decisions.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", storage.DefaultConfigPath(), "path to the config file")
}

func Execute() error {
	return rootCmd.Execute()
}
