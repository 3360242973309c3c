// Package mongo reads the catalog collections from MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/logging"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

const (
	serviceName = "mongo"

	defaultConnectTimeout = 10 * time.Second
)

var (
	_ ports.ContentStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Config configures the MongoDB connection.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

// Store adapts a MongoDB database to ports.ContentStore. Each catalog
// collection maps to a Mongo collection of the same name.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// New connects to MongoDB. The driver dials lazily, so a bad host shows up
// on the first query or Check rather than here.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: uri is required")
	}

	if cfg.Database == "" {
		return nil, errors.New("mongo: database is required")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	logger.Info("mongo client ready", slog.String("database", cfg.Database))

	return &Store{client: client, db: client.Database(cfg.Database), logger: logger}, nil
}

// CategoryNames implements ports.ContentStore.
func (s *Store) CategoryNames(ctx context.Context, collection string) ([]string, error) {
	projection := options.Find().SetProjection(bson.M{store.FieldName: 1})

	records, err := s.find(ctx, collection, bson.M{}, projection)
	if err != nil {
		return nil, s.unavailable(ctx, "listing "+collection, err)
	}

	names := make([]string, 0, len(records))

	for _, r := range records {
		if name, ok := store.CategoryName(r); ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// DocumentsByGrade implements ports.ContentStore.
func (s *Store) DocumentsByGrade(ctx context.Context, collection string, grade domain.Grade) ([]domain.ContentDocument, error) {
	records, err := s.find(ctx, collection, bson.M{store.FieldGrade: int(grade)})
	if err != nil {
		return nil, s.unavailable(ctx, "querying "+collection, err)
	}

	s.logger.Log(ctx, logging.LevelTrace, "mongo query",
		slog.String("collection", collection),
		slog.Int("grade", int(grade)),
		slog.Int("documents", len(records)),
	)

	docs := make([]domain.ContentDocument, 0, len(records))
	for _, r := range records {
		docs = append(docs, store.DocumentFromFields(r))
	}

	return docs, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return store.HealthName
}

// Check pings the primary.
func (s *Store) Check(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return s.unavailable(ctx, "ping", err)
	}

	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) find(ctx context.Context, collection string, filter bson.M, opts ...*options.FindOptions) ([]bson.M, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	var records []bson.M
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) unavailable(ctx context.Context, op string, err error) error {
	s.logger.WarnContext(ctx, "mongo request failed", slog.String("op", op), slog.Any("error", err))

	return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: %v", op, err))
}
