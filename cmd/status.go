package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective configuration and provider availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		status := map[string]any{
			"config":        app.cfg,
			"storage_path":  app.store.Path(),
			"openai_key":    os.Getenv("OPENAI_API_KEY") != "",
			"anthropic_key": os.Getenv("ANTHROPIC_API_KEY") != "",
			"health":        app.manager.Health(),
		}
		return printJSON(status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
