// Package main is the entry point for the classroom viewer service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients/acl"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/quotes"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store/firestore"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store/memory"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store/mongo"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/config"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/logging"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/telemetry"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
	"github.com/jsamuelsen/classroom-viewer/web"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// healthCheckTimeout bounds each readiness check.
const healthCheckTimeout = 3 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry(ports.WithCheckTimeout(healthCheckTimeout))

	// 6. Load the quote list (fail fast on an empty or malformed list)
	quoteSource, err := newQuoteSource(cfg, logger, healthRegistry)
	if err != nil {
		return err
	}

	quoteList, err := app.LoadQuotes(ctx, quoteSource, logger)
	if err != nil {
		return fmt.Errorf("loading quotes: %w", err)
	}

	location, err := cfg.Quotes.Location()
	if err != nil {
		return err
	}

	anchor, err := domain.ParseCalendarDate(cfg.Quotes.Anchor)
	if err != nil {
		return fmt.Errorf("parsing quote anchor: %w", err)
	}

	// 7. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:   quoteList,
		Location: location,
		Anchor:   anchor,
		Logger:   logger,
	})

	if err := healthRegistry.Register(quoteService); err != nil {
		return fmt.Errorf("registering quote health check: %w", err)
	}

	// 8. Open the content store and create the catalog service
	store, closeStore, err := newContentStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering content store health check: %w", err)
	}

	catalogService := app.NewCatalogService(app.CatalogServiceConfig{
		Store:                     store,
		SlideCategoriesCollection: cfg.Content.SlideCategoriesCollection,
		TestCategoriesCollection:  cfg.Content.TestCategoriesCollection,
		CacheTTL:                  cfg.Content.CacheTTL,
		Concurrency:               cfg.Content.Concurrency,
		Logger:                    logger,
	})

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)

	uiHandler, err := handlers.NewUIHandler(web.Static())
	if err != nil {
		return fmt.Errorf("loading UI bundle: %w", err)
	}

	// 10. Create HTTP server
	server := http.New(&cfg.Server, cfg.App.Environment, logger)

	// 11. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		Timeout:        cfg.Server.RequestTimeout,
		HealthHandler:  healthHandler,
		QuoteHandler:   handlers.NewQuoteHandler(quoteService),
		CatalogHandler: handlers.NewCatalogHandler(catalogService),
		UIHandler:      uiHandler,
	})

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	logger.Info("listening",
		slog.String("addr", server.Addr()),
		slog.Int("quotes", quoteService.Size()),
		slog.String("content_driver", cfg.Content.Driver),
	)

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newQuoteSource picks where the quote list is read from. The remote
// source is also registered as a readiness check.
func newQuoteSource(cfg *config.Config, logger *slog.Logger, registry ports.HealthRegistry) (ports.QuoteSource, error) {
	switch cfg.Quotes.Source {
	case config.QuoteSourceFile:
		return quotes.NewFileSource(cfg.Quotes.Path), nil

	case config.QuoteSourceEmbedded:
		return quotes.EmbeddedSource{}, nil

	case config.QuoteSourceHTTP:
		httpClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Quotes.BaseURL,
			ServiceName: "quote-host",
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating HTTP client: %w", err)
		}

		client := acl.NewQuoteListClient(acl.QuoteListClientConfig{
			Client: httpClient,
			Logger: logger,
		})

		if err := registry.Register(client); err != nil {
			return nil, fmt.Errorf("registering quote host health check: %w", err)
		}

		return client, nil

	default:
		return nil, fmt.Errorf("unknown quote source %q", cfg.Quotes.Source)
	}
}

type contentStore interface {
	ports.ContentStore
	ports.HealthChecker
}

// newContentStore opens the configured document store. The returned func
// releases its connections.
func newContentStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (contentStore, func(), error) {
	noop := func() {}

	switch cfg.Content.Driver {
	case config.ContentDriverMemory:
		if cfg.Content.FixturePath == "" {
			logger.Warn("content store has no fixture, catalog will be empty")
			return memory.New(), noop, nil
		}

		store, err := memory.Load(cfg.Content.FixturePath)
		if err != nil {
			return nil, noop, fmt.Errorf("loading content fixture: %w", err)
		}

		return store, noop, nil

	case config.ContentDriverFirestore:
		store, err := firestore.New(ctx, firestore.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			EmulatorHost:    cfg.Firestore.EmulatorHost,
			ProbeCollection: cfg.Content.SlideCategoriesCollection,
			Logger:          logger,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("opening firestore: %w", err)
		}

		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("closing firestore", slog.Any("error", err))
			}
		}, nil

	case config.ContentDriverMongo:
		store, err := mongo.New(ctx, mongo.Config{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
			Logger:         logger,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("connecting to mongo: %w", err)
		}

		return store, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := store.Close(closeCtx); err != nil {
				logger.Error("closing mongo", slog.Any("error", err))
			}
		}, nil

	default:
		return nil, noop, errors.New("unknown content driver " + cfg.Content.Driver)
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
