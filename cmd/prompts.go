package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adalundhe/atlas/core/storage"
)

var promptTemplateFile string

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage prompt template overrides",
}

var promptsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the builtin prompts into the store without overwriting overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.resolver.SeedDefaults(cmd.Context(), app.store); err != nil {
			return err
		}
		fmt.Println("defaults seeded")
		return nil
	},
}

var promptsListCmd = &cobra.Command{
	Use:   "list [agent-type]",
	Short: "List prompt rows for an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		records, err := app.store.ListPrompts(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(records)
	},
}

var promptsSetCmd = &cobra.Command{
	Use:   "set [agent-type] [prompt-name]",
	Short: "Create or replace a prompt override from a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(promptTemplateFile)
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		err = app.store.UpsertPrompt(cmd.Context(), &storage.PromptRecord{
			AgentType: args[0],
			Name:      args[1],
			Template:  string(body),
			Active:    true,
		})
		if err != nil {
			return err
		}

		app.resolver.Invalidate(args[0], args[1])
		fmt.Printf("prompt %s/%s updated\n", args[0], args[1])
		return nil
	},
}

func init() {
	promptsSetCmd.Flags().StringVar(&promptTemplateFile, "file", "", "file holding the template body")
	promptsSetCmd.MarkFlagRequired("file")

	promptsCmd.AddCommand(promptsSeedCmd)
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsSetCmd)
	rootCmd.AddCommand(promptsCmd)
}
