package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cradle/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's summary and sleep advice",
		Long: `Display the day at a glance:
- Whether the baby is awake, napping or in night sleep
- Hours slept so far, last feeding and last diaper
- The advisor's next-nap and bedtime suggestions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := wire.TrackerService().DaySummary(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to load day summary: %w", err)
			}

			profile, err := wire.ProfileService().GetProfile(ctx)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			fmt.Printf("%s — %s (%d months)\n", summary.Date, profile.Name, profile.AgeMonths)
			fmt.Println()

			fmt.Printf("Status: %s\n", statusColor(summary.Status))
			if summary.ActiveSleep != nil {
				fmt.Printf("  Asleep since %s\n", clockTime(summary.ActiveSleep.StartTime))
			} else if summary.AwakeSince != "" {
				fmt.Printf("  Awake since %s\n", clockTime(summary.AwakeSince))
			}
			fmt.Printf("Sleep today: %.1f h\n", summary.HoursAsleep)

			if summary.LastFeeding != nil {
				fmt.Printf("Last feeding: %s (%s)\n", clockTime(summary.LastFeeding.Timestamp), summary.LastFeeding.Side)
			}
			if summary.LastDiaper != nil {
				fmt.Printf("Last diaper: %s (%s)\n", clockTime(summary.LastDiaper.Timestamp), summary.LastDiaper.Type)
			}
			fmt.Println()

			nap, err := wire.AdvisorService().NextNap(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to compute nap suggestion: %w", err)
			}
			switch nap.Status {
			case "suggestion":
				fmt.Printf("Next nap: %s (about %.1f h, wake window %.1f h)\n",
					color.New(color.FgHiGreen).Sprint(clockTime(nap.SuggestedTime)),
					nap.DurationHours, nap.WakeWindowHours)
			case "waiting":
				fmt.Printf("Next nap: %s\n", nap.Reason)
			default:
				fmt.Printf("Next nap: none (%s)\n", nap.Reason)
			}

			bedtime, err := wire.AdvisorService().NextBedtime(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to compute bedtime suggestion: %w", err)
			}
			if bedtime.Status == "suggestion" {
				fmt.Printf("Bedtime: %s (night estimate %.1f h, wake around %s)\n",
					color.New(color.FgHiGreen).Sprint(clockTime(bedtime.SuggestedTime)),
					bedtime.NightHoursEstimate, clockTime(bedtime.ExpectedWakeTime))
			} else {
				fmt.Printf("Bedtime: %s\n", bedtime.Reason)
			}
			fmt.Printf("  Day sleep %.1f / %.1f h, awake for %.1f h\n",
				bedtime.DaySleepSoFar, bedtime.TargetDaySleep, bedtime.HoursAwake)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to summarize (YYYY-MM-DD, default today)")

	return cmd
}

// clockTime trims a civil timestamp down to HH:MM for terminal output.
func clockTime(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ts
}

func statusColor(status string) string {
	switch status {
	case "napping":
		return color.New(color.FgHiCyan).Sprint("napping")
	case "night_sleeping":
		return color.New(color.FgHiBlue).Sprint("night sleep")
	default:
		return color.New(color.FgHiYellow).Sprint("awake")
	}
}
