package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/wire"
)

// EntriesCmd returns the entries command
func EntriesCmd() *cobra.Command {
	var date string
	var week bool

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Show the chronological activity feed",
		Long: `List all recorded events for a day (newest first) or, with --week,
for the seven days ending on the given date (oldest first).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var list []*primary.Entry
			var err error
			if week {
				day := civil.DayOf(wire.Now())
				if date != "" {
					day, err = wire.Parser().ParseDate(date)
					if err != nil {
						return err
					}
				}
				start := day.AddDate(0, 0, -6)
				list, err = wire.EntryService().EntriesForRange(ctx,
					civil.DateString(start), civil.DateString(day))
			} else {
				list, err = wire.EntryService().EntriesForDay(ctx, date)
			}
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			if len(list) == 0 {
				fmt.Println("No entries found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tTIME\tCATEGORY\tENTRY")
			fmt.Fprintln(w, "---\t----\t--------\t-----")
			for _, e := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Day, clockTime(e.Timestamp), e.Category, e.Label)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&week, "week", false, "List the seven days ending on the date")

	return cmd
}
