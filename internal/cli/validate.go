package cli

import (
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/classroom-viewer/internal/app"
)

func newValidateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a quote list loads and is not empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.LoadQuotes(cmd.Context(), o.source(), o.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			name := o.file
			if name == "" {
				name = "bundled list"
			}

			okColor.Fprint(cmd.OutOrStdout(), "ok")
			dimColor.Fprintf(cmd.OutOrStdout(), " %s: %d quotes\n", name, list.Len())

			return nil
		},
	}
}
