// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

const instrumentationName = "github.com/jsamuelsen/classroom-viewer/internal/app"

// MaxScheduleDays bounds Schedule to a year, leap day included.
const MaxScheduleDays = 366

// DailyQuote is a selected quote together with how it was chosen.
type DailyQuote struct {
	Quote        domain.Quote
	Index        int
	Date         domain.CalendarDate
	SerialDay    int64
	Anchor       domain.CalendarDate
	AnchorSerial int64
	TimeZone     string
	Total        int

	// BeforeAnchor is set when Date precedes the anchor and the first quote
	// is shown in place of a cycle position.
	BeforeAnchor bool
}

// QuoteService answers "which quote is shown on this day".
// The quote list is fixed at construction; the service holds no mutable state.
type QuoteService struct {
	quotes   domain.QuoteList
	location *time.Location
	anchor   domain.CalendarDate
	clock    ports.Clock
	logger   *slog.Logger

	tracer   trace.Tracer
	selected metric.Int64Counter
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	// Quotes is the catalog loaded at startup.
	Quotes domain.QuoteList

	// Location is the zone whose calendar decides "today".
	Location *time.Location

	// Anchor is day zero of the cycle.
	Anchor domain.CalendarDate

	// Clock defaults to the system clock.
	Clock ports.Clock

	Logger *slog.Logger
}

// NewQuoteService creates a quote service.
// Panics if Location is nil. Defaults Clock and Logger when unset.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Location == nil {
		panic("QuoteService: Location is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var selected metric.Int64Counter = noop.Int64Counter{}

	counter, err := otel.Meter(instrumentationName).Int64Counter("quotes.selected",
		metric.WithDescription("Number of daily quote selections"),
	)
	if err == nil {
		selected = counter
	}

	return &QuoteService{
		quotes:   cfg.Quotes,
		location: cfg.Location,
		anchor:   cfg.Anchor,
		clock:    clock,
		logger:   logger,
		tracer:   otel.Tracer(instrumentationName),
		selected: selected,
	}
}

// Today returns the quote for the current calendar day in the configured zone.
func (s *QuoteService) Today(ctx context.Context) (*DailyQuote, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.Today")
	defer span.End()

	now := s.clock.Now()

	sel, err := domain.SelectAt(now, s.location, s.anchor, s.quotes)
	if err != nil {
		s.logger.ErrorContext(ctx, "quote selection failed",
			slog.Time("now", now),
			slog.Any("error", err),
		)

		return nil, err
	}

	return s.record(ctx, sel), nil
}

// On returns the quote for an explicit calendar date.
func (s *QuoteService) On(ctx context.Context, date domain.CalendarDate) (*DailyQuote, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.On",
		trace.WithAttributes(attribute.String("quote.date", date.String())))
	defer span.End()

	if err := date.Validate(); err != nil {
		return nil, domain.NewValidationErrorWithValue("date", err.Error(), date.String())
	}

	sel, err := domain.SelectOn(date, s.anchor, s.quotes)
	if err != nil {
		return nil, err
	}

	return s.record(ctx, sel), nil
}

// Schedule returns the quotes for days consecutive dates starting at from.
// A zero from means today in the configured zone.
func (s *QuoteService) Schedule(ctx context.Context, from domain.CalendarDate, days int) ([]DailyQuote, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.Schedule",
		trace.WithAttributes(
			attribute.String("quote.from", from.String()),
			attribute.Int("quote.days", days),
		))
	defer span.End()

	if days < 1 || days > MaxScheduleDays {
		return nil, domain.NewValidationErrorWithValue("days",
			fmt.Sprintf("must be between 1 and %d", MaxScheduleDays), days)
	}

	if from.IsZero() {
		today, err := s.CurrentDate()
		if err != nil {
			return nil, err
		}

		from = today
	} else if err := from.Validate(); err != nil {
		return nil, domain.NewValidationErrorWithValue("from", err.Error(), from.String())
	}

	out := make([]DailyQuote, 0, days)

	for i := range days {
		sel, err := domain.SelectOn(from.AddDays(i), s.anchor, s.quotes)
		if err != nil {
			return nil, err
		}

		out = append(out, *s.toDailyQuote(sel))
	}

	s.logger.DebugContext(ctx, "built quote schedule",
		slog.String("from", from.String()),
		slog.Int("days", days),
	)

	return out, nil
}

// CurrentDate returns the current calendar date in the configured zone.
func (s *QuoteService) CurrentDate() (domain.CalendarDate, error) {
	return domain.DateIn(s.clock.Now(), s.location)
}

// Size returns the number of quotes in the cycle.
func (s *QuoteService) Size() int {
	return s.quotes.Len()
}

// Name implements ports.HealthChecker.
func (s *QuoteService) Name() string {
	return "quotes"
}

// Check implements ports.HealthChecker. The service is unhealthy when
// it was built with an empty list.
func (s *QuoteService) Check(context.Context) error {
	if s.quotes.Len() == 0 {
		return domain.NewValidationError("quotes", "quote list is empty")
	}

	return nil
}

func (s *QuoteService) record(ctx context.Context, sel domain.Selection) *DailyQuote {
	dq := s.toDailyQuote(sel)

	s.selected.Add(ctx, 1, metric.WithAttributes(attribute.Int("quote.index", sel.Index)))

	s.logger.DebugContext(ctx, "selected daily quote",
		slog.String("date", sel.Date.String()),
		slog.Int("index", sel.Index),
		slog.String("author", sel.Quote.Author),
	)

	return dq
}

func (s *QuoteService) toDailyQuote(sel domain.Selection) *DailyQuote {
	return &DailyQuote{
		Quote:        sel.Quote,
		Index:        sel.Index,
		Date:         sel.Date,
		SerialDay:    sel.SerialDay,
		Anchor:       s.anchor,
		AnchorSerial: sel.AnchorSerial,
		TimeZone:     s.location.String(),
		Total:        s.quotes.Len(),
		BeforeAnchor: sel.Date.Before(s.anchor),
	}
}

// LoadQuotes reads the quote list from src once, logging its size.
func LoadQuotes(ctx context.Context, src ports.QuoteSource, logger *slog.Logger) (domain.QuoteList, error) {
	if logger == nil {
		logger = slog.Default()
	}

	quotes, err := src.LoadQuotes(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load quote list", slog.Any("error", err))

		return domain.QuoteList{}, fmt.Errorf("loading quote list: %w", err)
	}

	if quotes.Len() == 0 {
		return domain.QuoteList{}, domain.NewValidationError("quotes", "quote list is empty")
	}

	logger.InfoContext(ctx, "loaded quote list", slog.Int("count", quotes.Len()))

	return quotes, nil
}
