package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

var (
	quoteColor  = color.New(color.FgHiWhite, color.Bold)
	authorColor = color.New(color.FgCyan)
	dimColor    = color.New(color.Faint)
	okColor     = color.New(color.FgGreen, color.Bold)
)

func newTodayCmd(o *options) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the quote shown today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return domain.NewValidationErrorWithValue("at", "must be an RFC3339 timestamp", at)
				}

				o.clock = ports.FixedClock{At: t}
			}

			svc, err := o.service(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			dq, err := svc.Today(cmd.Context())
			if err != nil {
				return err
			}

			printQuote(cmd.OutOrStdout(), dq)

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluate at this instant (RFC3339) instead of now")

	return cmd
}

func printQuote(w io.Writer, dq *app.DailyQuote) {
	quoteColor.Fprintf(w, "“%s”\n", dq.Quote.Text)
	authorColor.Fprintf(w, "  - %s\n", dq.Quote.Author)

	if dq.Quote.Source != "" {
		fmt.Fprintf(w, "  %s\n", dq.Quote.Source)
	}

	dimColor.Fprintf(w, "%s (%s) · #%d of %d", dq.Date, dq.TimeZone, dq.Index+1, dq.Total)

	if dq.BeforeAnchor {
		dimColor.Fprintf(w, " · before %s", dq.Anchor)
	}

	fmt.Fprintln(w)
}
