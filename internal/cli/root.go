// Package cli implements the quotectl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/quotes"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/config"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/logging"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

// options holds the persistent flags shared by every command.
type options struct {
	configDir string
	profile   string
	file      string
	timezone  string
	anchor    string
	verbose   bool

	clock ports.Clock
}

// Option customizes the root command.
type Option func(*options)

// WithClock pins "now" for today and schedule.
func WithClock(c ports.Clock) Option {
	return func(o *options) { o.clock = c }
}

// NewRootCmd builds the quotectl command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &options{clock: ports.SystemClock{}}
	for _, opt := range opts {
		opt(o)
	}

	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Inspect the quote of the day cycle",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.applyConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.configDir, "config-dir", config.DefaultConfigDir, "directory holding base.yaml and profile files")
	flags.StringVar(&o.profile, "profile", "", "config profile to layer over base.yaml")
	flags.StringVarP(&o.file, "file", "f", "", "quote list JSON file (default: the bundled list)")
	flags.StringVar(&o.timezone, "tz", "", "IANA zone deciding the calendar day")
	flags.StringVar(&o.anchor, "anchor", "", "day zero of the cycle, YYYY-MM-DD")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newTodayCmd(o),
		newValidateCmd(o),
		newScheduleCmd(o),
	)

	return root
}

// applyConfig fills unset flags from the config files.
func (o *options) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadDir(o.configDir, o.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()

	if !flags.Changed("tz") {
		o.timezone = cfg.Quotes.Timezone
	}

	if !flags.Changed("anchor") {
		o.anchor = cfg.Quotes.Anchor
	}

	if !flags.Changed("file") && cfg.Quotes.Source == config.QuoteSourceFile {
		o.file = cfg.Quotes.Path
	}

	return nil
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}

	return logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "quotectl",
	}, w)
}

func (o *options) source() ports.QuoteSource {
	if o.file == "" {
		return quotes.EmbeddedSource{}
	}

	return quotes.NewFileSource(o.file)
}

// service loads the list and builds a quote service from the flags.
func (o *options) service(ctx context.Context, cmd *cobra.Command) (*app.QuoteService, error) {
	logger := o.logger(cmd.ErrOrStderr())

	loc, err := config.LoadZone(o.timezone)
	if err != nil {
		return nil, domain.NewValidationErrorWithValue("tz", "must be an IANA time zone name", o.timezone)
	}

	anchor, err := domain.ParseCalendarDate(o.anchor)
	if err != nil {
		return nil, domain.NewValidationErrorWithValue("anchor", err.Error(), o.anchor)
	}

	list, err := app.LoadQuotes(ctx, o.source(), logger)
	if err != nil {
		return nil, err
	}

	return app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:   list,
		Location: loc,
		Anchor:   anchor,
		Clock:    o.clock,
		Logger:   logger,
	}), nil
}
