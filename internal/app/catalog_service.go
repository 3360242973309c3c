package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

// Default category-name collections.
const (
	DefaultSlideCategoriesCollection = "slaytKategoriAdlari"
	DefaultTestCategoriesCollection  = "kategoriAdlari"
)

const defaultFetchConcurrency = 8

// CatalogServiceConfig contains configuration for the catalog service.
type CatalogServiceConfig struct {
	Store ports.ContentStore

	SlideCategoriesCollection string
	TestCategoriesCollection  string

	// CacheTTL keeps listings per grade. Zero disables caching.
	CacheTTL time.Duration

	// Concurrency bounds simultaneous category queries.
	Concurrency int

	Clock  ports.Clock
	Logger *slog.Logger
}

// CatalogService builds the per-grade slide and test listings.
type CatalogService struct {
	store           ports.ContentStore
	slideCollection string
	testCollection  string
	concurrency     int
	logger          *slog.Logger
	tracer          trace.Tracer
	slideCache      *ttlCache[domain.SlideCategory]
	testCache       *ttlCache[domain.TestCategory]
}

// NewCatalogService creates a catalog service.
// Panics if Store is nil.
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	if cfg.Store == nil {
		panic("CatalogService: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	slideCollection := orDefault(cfg.SlideCategoriesCollection, DefaultSlideCategoriesCollection)
	testCollection := orDefault(cfg.TestCategoriesCollection, DefaultTestCategoriesCollection)

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}

	return &CatalogService{
		store:           cfg.Store,
		slideCollection: slideCollection,
		testCollection:  testCollection,
		concurrency:     concurrency,
		logger:          logger,
		tracer:          otel.Tracer(instrumentationName),
		slideCache:      newTTLCache[domain.SlideCategory](cfg.CacheTTL, clock),
		testCache:       newTTLCache[domain.TestCategory](cfg.CacheTTL, clock),
	}
}

// Slides returns the slide categories for grade.
func (s *CatalogService) Slides(ctx context.Context, grade domain.Grade) ([]domain.SlideCategory, error) {
	if err := grade.Validate(); err != nil {
		return nil, err
	}

	if cached, ok := s.slideCache.get(grade); ok {
		return cached, nil
	}

	ctx, span := s.tracer.Start(ctx, "CatalogService.Slides",
		trace.WithAttributes(attribute.Int("catalog.grade", int(grade))))
	defer span.End()

	groups, err := fetchCategories(ctx, s, s.slideCollection, grade, domain.SlideFrom,
		func(sl domain.Slide) string { return sl.Name })
	if err != nil {
		return nil, err
	}

	out := make([]domain.SlideCategory, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.SlideCategory{Category: g.name, Slides: g.items})
	}

	s.slideCache.put(grade, out)

	return out, nil
}

// Tests returns the test categories for grade.
func (s *CatalogService) Tests(ctx context.Context, grade domain.Grade) ([]domain.TestCategory, error) {
	if err := grade.Validate(); err != nil {
		return nil, err
	}

	if cached, ok := s.testCache.get(grade); ok {
		return cached, nil
	}

	ctx, span := s.tracer.Start(ctx, "CatalogService.Tests",
		trace.WithAttributes(attribute.Int("catalog.grade", int(grade))))
	defer span.End()

	groups, err := fetchCategories(ctx, s, s.testCollection, grade, domain.TestFrom,
		func(t domain.Test) string { return t.Name })
	if err != nil {
		return nil, err
	}

	out := make([]domain.TestCategory, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.TestCategory{Category: g.name, Tests: g.items})
	}

	s.testCache.put(grade, out)

	return out, nil
}

// Catalog returns both listings for grade, fetched concurrently.
func (s *CatalogService) Catalog(ctx context.Context, grade domain.Grade) (*domain.Catalog, error) {
	if err := grade.Validate(); err != nil {
		return nil, err
	}

	slides, tests, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.SlideCategory, error) { return s.Slides(ctx, grade) },
		func(ctx context.Context) ([]domain.TestCategory, error) { return s.Tests(ctx, grade) },
	)
	if err != nil {
		return nil, err
	}

	return &domain.Catalog{Grade: grade, Slides: slides, Tests: tests}, nil
}

// Invalidate drops every cached listing.
func (s *CatalogService) Invalidate() {
	s.slideCache.clear()
	s.testCache.clear()
}

type categoryGroup[T any] struct {
	name  string
	items []T
}

// fetchCategories reads the category names from collection, queries each
// category for grade in parallel and returns the non-empty groups sorted.
func fetchCategories[T any](
	ctx context.Context,
	s *CatalogService,
	collection string,
	grade domain.Grade,
	convert func(domain.ContentDocument) (T, bool),
	nameOf func(T) string,
) ([]categoryGroup[T], error) {
	names, err := s.store.CategoryNames(ctx, collection)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read category names",
			slog.String("collection", collection),
			slog.Any("error", err),
		)

		return nil, asUnavailable(err)
	}

	names = slices.DeleteFunc(slices.Clone(names), func(n string) bool {
		return strings.TrimSpace(n) == ""
	})

	fns := make([]func(context.Context) (categoryGroup[T], error), 0, len(names))

	for _, name := range names {
		fns = append(fns, func(ctx context.Context) (categoryGroup[T], error) {
			docs, err := s.store.DocumentsByGrade(ctx, name, grade)
			if err != nil {
				return categoryGroup[T]{}, err
			}

			items := make([]T, 0, len(docs))

			for _, doc := range docs {
				if item, ok := convert(doc); ok {
					items = append(items, item)
				}
			}

			return categoryGroup[T]{name: name, items: items}, nil
		})
	}

	groups, err := ParallelLimit(ctx, s.concurrency, fns...)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read category documents",
			slog.String("collection", collection),
			slog.Int("grade", int(grade)),
			slog.Any("error", err),
		)

		return nil, asUnavailable(err)
	}

	byName := compareNames()

	for i := range groups {
		slices.SortStableFunc(groups[i].items, func(a, b T) int {
			return byName(nameOf(a), nameOf(b))
		})
	}

	groups = slices.DeleteFunc(groups, func(g categoryGroup[T]) bool {
		return len(g.items) == 0
	})

	slices.SortStableFunc(groups, func(a, b categoryGroup[T]) int {
		return byName(a.name, b.name)
	})

	s.logger.DebugContext(ctx, "built category listing",
		slog.String("collection", collection),
		slog.Int("grade", int(grade)),
		slog.Int("categories", len(groups)),
	)

	return groups, nil
}

// compareNames returns a Turkish comparison that reads digit runs as numbers
// and ignores case and accents. The returned func holds its own collator and
// must not be shared across goroutines.
func compareNames() func(a, b string) int {
	return collate.New(language.Turkish, collate.IgnoreCase, collate.IgnoreDiacritics, collate.Numeric).CompareString
}

func asUnavailable(err error) error {
	if domain.IsUnavailable(err) || domain.IsValidation(err) || domain.IsNotFound(err) {
		return err
	}

	return domain.NewUnavailableError("content-store", err.Error())
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

type cloner[C any] interface {
	Clone() C
}

func cloneAll[C cloner[C]](in []C) []C {
	if in == nil {
		return nil
	}

	out := make([]C, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}

	return out
}

// ttlCache keeps one category listing per grade, guarded by a mutex.
// Listings are copied in and out so callers never share the cached slices.
type ttlCache[C cloner[C]] struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   ports.Clock
	entries map[domain.Grade]ttlEntry[C]
}

type ttlEntry[C any] struct {
	value   []C
	expires time.Time
}

func newTTLCache[C cloner[C]](ttl time.Duration, clock ports.Clock) *ttlCache[C] {
	return &ttlCache[C]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[domain.Grade]ttlEntry[C]),
	}
}

func (c *ttlCache[C]) get(g domain.Grade) ([]C, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[g]
	if !ok || !c.clock.Now().Before(e.expires) {
		return nil, false
	}

	return cloneAll(e.value), true
}

func (c *ttlCache[C]) put(g domain.Grade, v []C) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[g] = ttlEntry[C]{value: cloneAll(v), expires: c.clock.Now().Add(c.ttl)}
}

func (c *ttlCache[C]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}
