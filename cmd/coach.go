package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adalundhe/atlas/agents/coach"
	"github.com/adalundhe/atlas/core/kpi"
	"github.com/adalundhe/atlas/core/storage"
)

var (
	coachEmail   string
	coachSummary string
	coachRecord  bool
	coachChannel string
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Decide whether to send a coaching message and compose it",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()

		user, err := app.store.EnsureUser(ctx, coachEmail)
		if err != nil {
			return err
		}

		performance, err := app.kpis.Latest(ctx, coachEmail)
		if err != nil {
			return err
		}

		lastSend, err := app.store.LastMessageTime(ctx, user.ID)
		if err != nil {
			return err
		}

		req := &coach.Request{
			Name:       user.Name,
			Department: user.Department,
			Role:       user.Role,
			Summary:    coachSummary,
			LastSend:   lastSend,
		}
		if performance.HasData {
			req.Sample = &kpi.PerformanceSample{
				UserID:     user.ID,
				Department: user.Department,
				Month:      performance.Month,
				Target:     performance.Target,
				Actual:     performance.Actual,
				Drift:      performance.Drift,
			}
		}

		decision := app.manager.CoachMessage(ctx, req)

		if decision.ShouldSend && coachRecord {
			err := app.store.RecordMessage(ctx, &storage.MessageRecord{
				UserID:  user.ID,
				Channel: coachChannel,
				Tier:    string(decision.Tier),
				Text:    decision.Text,
			})
			if err != nil {
				return err
			}
		}

		return printJSON(decision)
	},
}

func init() {
	coachCmd.Flags().StringVar(&coachEmail, "email", "", "user email")
	coachCmd.Flags().StringVar(&coachSummary, "summary", "", "free-text activity summary")
	coachCmd.Flags().BoolVar(&coachRecord, "record", false, "record a sent message for cooldown tracking")
	coachCmd.Flags().StringVar(&coachChannel, "channel", "cli", "delivery channel label")
	coachCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(coachCmd)
}
