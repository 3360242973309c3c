package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

const defaultScheduleDays = 7

// maxAuthorWidth truncates long author names in the table.
const maxAuthorWidth = 28

func newScheduleCmd(o *options) *cobra.Command {
	var (
		from string
		days int
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the quotes for upcoming days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := o.service(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			var start domain.CalendarDate

			if from != "" {
				start, err = domain.ParseCalendarDate(from)
				if err != nil {
					return domain.NewValidationErrorWithValue("from", err.Error(), from)
				}
			}

			entries, err := svc.Schedule(cmd.Context(), start, days)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\t#\tAUTHOR\tQUOTE")

			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Date, e.Index, truncate(e.Quote.Author, maxAuthorWidth), e.Quote.Text)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVarP(&days, "days", "n", defaultScheduleDays, "number of days")

	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
