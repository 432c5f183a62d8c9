package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/adalundhe/atlas/agents/orchestrator"
)

var (
	planTimeline     string
	planBudget       string
	planDepartments  []string
	planRequirements string
)

var planCmd = &cobra.Command{
	Use:   "plan [goal text]",
	Short: "Decompose a free-text goal into a project plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		plan := app.manager.ExpandGoal(cmd.Context(), &orchestrator.GoalRequest{
			Goal:                strings.Join(args, " "),
			Timeline:            planTimeline,
			Budget:              planBudget,
			Departments:         planDepartments,
			SpecialRequirements: planRequirements,
		})

		return printJSON(plan)
	},
}

func init() {
	planCmd.Flags().StringVar(&planTimeline, "timeline", "", "timeline hint")
	planCmd.Flags().StringVar(&planBudget, "budget", "", "budget hint")
	planCmd.Flags().StringSliceVar(&planDepartments, "departments", nil, "available departments")
	planCmd.Flags().StringVar(&planRequirements, "requirements", "", "special requirements")

	rootCmd.AddCommand(planCmd)
}
