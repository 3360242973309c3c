//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/classroom-viewer/internal/adapters/http"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store/memory"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/config"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
	"github.com/jsamuelsen/classroom-viewer/web"
)

// fixturePath is the committed memory-store seed, relative to this package.
const fixturePath = "../../configs/fixtures/content.yaml"

// hostedQuotes is served by the stub quote host. The fixed clock lands on
// index 2 (2025-09-19 is two days after the anchor).
const hostedQuotes = `[
  {"author": "Mustafa Kemal Atatürk", "quote": "Hayatta en hakiki mürşit ilimdir."},
  {"author": "Yunus Emre", "quote": "İlim ilim bilmektir, ilim kendin bilmektir.", "source": "https://tr.wikisource.org/wiki/Yunus_Emre"},
  {"author": "Mevlana", "quote": "Dün dünde kaldı cancağızım, bugün yeni şeyler söylemek lazım."}
]`

var fixedNow = time.Date(2025, time.September, 19, 10, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeJSON(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

// newQuoteHost serves body at /sozler.json.
func newQuoteHost(t testing.TB, body string) *httptest.Server {
	t.Helper()

	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+acl.DefaultQuoteListPath {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(host.Close)

	return host
}

// quoteHostClient builds the resilient client used for the http quote source.
func quoteHostClient(t testing.TB, baseURL string) *acl.QuoteListClient {
	t.Helper()

	client, err := clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: "quote-host",
		Timeout:     time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   2,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	return acl.NewQuoteListClient(acl.QuoteListClientConfig{Client: client, Logger: discardLogger()})
}

type appOptions struct {
	store    ports.ContentStore
	cacheTTL time.Duration
}

// newApp wires the full router the way cmd/service does, with the quote
// list fetched over HTTP and the clock pinned to fixedNow.
func newApp(t testing.TB, opts appOptions) *gin.Engine {
	t.Helper()

	ctx := context.Background()
	registry := ports.NewHealthRegistry(ports.WithCheckTimeout(time.Second))

	quoteClient := quoteHostClient(t, newQuoteHost(t, hostedQuotes).URL)
	require.NoError(t, registry.Register(quoteClient))

	list, err := app.LoadQuotes(ctx, quoteClient, discardLogger())
	require.NoError(t, err)

	istanbul, err := time.LoadLocation(config.DefaultQuotesTimezone)
	require.NoError(t, err)

	anchor, err := domain.ParseCalendarDate(config.DefaultQuotesAnchor)
	require.NoError(t, err)

	quoteSvc := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:   list,
		Location: istanbul,
		Anchor:   anchor,
		Clock:    ports.FixedClock{At: fixedNow},
		Logger:   discardLogger(),
	})
	require.NoError(t, registry.Register(quoteSvc))

	store := opts.store
	if store == nil {
		fixture, err := memory.Load(fixturePath)
		require.NoError(t, err)

		store = fixture
	}

	if checker, ok := store.(ports.HealthChecker); ok {
		require.NoError(t, registry.Register(checker))
	}

	catalogSvc := app.NewCatalogService(app.CatalogServiceConfig{
		Store:    store,
		CacheTTL: opts.cacheTTL,
		Logger:   discardLogger(),
	})

	ui, err := handlers.NewUIHandler(web.Static())
	require.NoError(t, err)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName:    "classroom-viewer",
		Timeout:        2 * time.Second,
		HealthHandler:  handlers.NewHealthHandler(registry, handlers.NewBuildInfo("classroom-viewer", "test", "none", "now")),
		QuoteHandler:   handlers.NewQuoteHandler(quoteSvc),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc),
		UIHandler:      ui,
	})

	return engine
}
