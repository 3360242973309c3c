// Package firestore reads the catalog collections from Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/logging"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

const (
	serviceName = "firestore"

	// emulatorEnv is read by the Firestore client library.
	emulatorEnv = "FIRESTORE_EMULATOR_HOST"
)

var (
	_ ports.ContentStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Config configures the Firestore connection.
type Config struct {
	ProjectID       string
	CredentialsFile string
	EmulatorHost    string

	// ProbeCollection is read with limit 1 by Check.
	ProbeCollection string

	Logger *slog.Logger
}

// Store adapts a Firestore client to ports.ContentStore.
type Store struct {
	client *firestore.Client
	probe  string
	logger *slog.Logger
}

// New opens a client. With EmulatorHost set the emulator is used and no
// credentials are needed.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firestore: project id is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var opts []option.ClientOption

	switch {
	case cfg.EmulatorHost != "":
		if err := os.Setenv(emulatorEnv, cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("firestore: setting emulator host: %w", err)
		}
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile)) //nolint:staticcheck // file is operator-provided
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: creating client: %w", err)
	}

	logger.Info("firestore client ready",
		slog.String("project_id", cfg.ProjectID),
		slog.Bool("emulator", cfg.EmulatorHost != ""),
	)

	return NewWithClient(client, cfg.ProbeCollection, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *firestore.Client, probeCollection string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{client: client, probe: probeCollection, logger: logger}
}

// CategoryNames implements ports.ContentStore.
func (s *Store) CategoryNames(ctx context.Context, collection string) ([]string, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, s.unavailable(ctx, "listing "+collection, err)
	}

	names := make([]string, 0, len(snaps))

	for _, snap := range snaps {
		if name, ok := store.CategoryName(snap.Data()); ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// DocumentsByGrade implements ports.ContentStore.
func (s *Store) DocumentsByGrade(ctx context.Context, collection string, grade domain.Grade) ([]domain.ContentDocument, error) {
	q := s.client.Collection(collection).Where(store.FieldGrade, "==", int(grade))

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, s.unavailable(ctx, "querying "+collection, err)
	}

	s.logger.Log(ctx, logging.LevelTrace, "firestore query",
		slog.String("collection", collection),
		slog.Int("grade", int(grade)),
		slog.Int("documents", len(snaps)),
	)

	docs := make([]domain.ContentDocument, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, store.DocumentFromFields(snap.Data()))
	}

	return docs, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return store.HealthName
}

// Check reads at most one document from the probe collection.
func (s *Store) Check(ctx context.Context) error {
	if s.probe == "" {
		return nil
	}

	iter := s.client.Collection(s.probe).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return s.unavailable(ctx, "probe", err)
	}

	return nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) unavailable(ctx context.Context, op string, err error) error {
	s.logger.WarnContext(ctx, "firestore request failed", slog.String("op", op), slog.Any("error", err))

	return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: %v", op, err))
}
