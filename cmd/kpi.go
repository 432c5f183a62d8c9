package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	kpiEmail  string
	kpiMonth  string
	kpiTarget float64
	kpiActual float64
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Manage KPI samples",
}

var kpiSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the KPI for a user and month",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sample, err := app.kpis.Upsert(cmd.Context(), kpiEmail, kpiMonth, kpiTarget, kpiActual)
		if err != nil {
			return err
		}

		return printJSON(sample)
	},
}

var kpiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a user's latest performance",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		performance, err := app.kpis.Latest(cmd.Context(), kpiEmail)
		if err != nil {
			return err
		}

		return printJSON(performance)
	},
}

func init() {
	kpiSetCmd.Flags().StringVar(&kpiEmail, "email", "", "user email")
	kpiSetCmd.Flags().StringVar(&kpiMonth, "month", "", "period, YYYY-MM")
	kpiSetCmd.Flags().Float64Var(&kpiTarget, "target", 0, "target value")
	kpiSetCmd.Flags().Float64Var(&kpiActual, "actual", 0, "actual value")
	kpiSetCmd.MarkFlagRequired("email")
	kpiSetCmd.MarkFlagRequired("month")
	kpiSetCmd.MarkFlagRequired("target")
	kpiSetCmd.MarkFlagRequired("actual")

	kpiShowCmd.Flags().StringVar(&kpiEmail, "email", "", "user email")
	kpiShowCmd.MarkFlagRequired("email")

	kpiCmd.AddCommand(kpiSetCmd)
	kpiCmd.AddCommand(kpiShowCmd)
	rootCmd.AddCommand(kpiCmd)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
