package acl

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/quotes"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/logging"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

const (
	// DefaultQuoteListPath is fetched relative to the client's base URL.
	DefaultQuoteListPath = "sozler.json"

	// maxQuoteListBytes caps the downloaded list.
	maxQuoteListBytes = 1 << 20
)

var (
	_ ports.QuoteSource   = (*QuoteListClient)(nil)
	_ ports.HealthChecker = (*QuoteListClient)(nil)
)

// QuoteListClientConfig configures a QuoteListClient.
type QuoteListClientConfig struct {
	// Client must have BaseURL pointing at the directory serving the list.
	Client *clients.Client

	// Path defaults to DefaultQuoteListPath.
	Path string

	Logger *slog.Logger
}

// QuoteListClient loads the quote list from a remote host.
type QuoteListClient struct {
	BaseAdapter

	path   string
	logger *slog.Logger
}

// NewQuoteListClient panics when Client is nil.
func NewQuoteListClient(cfg QuoteListClientConfig) *QuoteListClient {
	if cfg.Client == nil {
		panic("QuoteListClient: Client is required")
	}

	path := cfg.Path
	if path == "" {
		path = DefaultQuoteListPath
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteListClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		path:        path,
		logger:      logger,
	}
}

// LoadQuotes downloads and parses the list, bypassing intermediary caches.
// Host failures are Unavailable; a malformed list is a validation error.
func (c *QuoteListClient) LoadQuotes(ctx context.Context) (domain.QuoteList, error) {
	c.logger.Log(ctx, logging.LevelTrace, "fetching quote list", slog.String("path", c.path))

	body, err := c.Get(ctx, c.path, "fetch quote list", maxQuoteListBytes,
		clients.WithHeader("Cache-Control", "no-store"),
		clients.WithHeader("Accept", "application/json"),
	)
	if err != nil {
		return domain.QuoteList{}, err
	}

	list, err := quotes.Parse(body)
	if err != nil {
		c.logger.WarnContext(ctx, "remote quote list rejected",
			slog.String("downstream", c.ServiceName()),
			slog.Any("error", err),
		)

		return domain.QuoteList{}, err
	}

	c.logger.DebugContext(ctx, "fetched quote list", slog.Int("count", list.Len()))

	return list, nil
}

// Name implements ports.HealthChecker.
func (c *QuoteListClient) Name() string {
	return c.ServiceName()
}
