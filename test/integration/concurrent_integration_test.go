//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store/memory"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

// instrumentedStore wraps a store, counting reads and tracking how many
// DocumentsByGrade calls run at once.
type instrumentedStore struct {
	ports.ContentStore

	delay time.Duration

	nameReads atomic.Int32
	docReads  atomic.Int32
	inFlight  atomic.Int32
	maxFlight atomic.Int32
}

func (s *instrumentedStore) CategoryNames(ctx context.Context, collection string) ([]string, error) {
	s.nameReads.Add(1)
	return s.ContentStore.CategoryNames(ctx, collection)
}

func (s *instrumentedStore) DocumentsByGrade(ctx context.Context, collection string, grade domain.Grade) ([]domain.ContentDocument, error) {
	s.docReads.Add(1)

	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	for {
		peak := s.maxFlight.Load()
		if n <= peak || s.maxFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	return s.ContentStore.DocumentsByGrade(ctx, collection, grade)
}

func fixtureStore(t *testing.T) *memory.Store {
	t.Helper()

	store, err := memory.Load(fixturePath)
	require.NoError(t, err)

	return store
}

// TestConcurrent_TodayIsStable verifies every concurrent caller sees the
// same quote for the same day.
func TestConcurrent_TodayIsStable(t *testing.T) {
	server := httptest.NewServer(newApp(t, appOptions{}))
	defer server.Close()

	const numRequests = 50

	bodies := make([]string, numRequests)

	var wg sync.WaitGroup
	for i := range numRequests {
		wg.Go(func() {
			resp, err := http.Get(server.URL + "/api/v1/quotes/today")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Quote string `json:"quote"`
				Index int    `json:"index"`
			}
			if assert.NoError(t, decodeJSON(resp, &body)) {
				bodies[i] = body.Quote
				assert.Equal(t, 2, body.Index)
			}
		})
	}
	wg.Wait()

	for _, b := range bodies {
		assert.Equal(t, bodies[0], b)
	}
}

// TestConcurrent_CatalogCacheAbsorbsLoad verifies a warm cache serves
// concurrent catalog requests without touching the store.
func TestConcurrent_CatalogCacheAbsorbsLoad(t *testing.T) {
	store := &instrumentedStore{ContentStore: fixtureStore(t)}
	server := httptest.NewServer(newApp(t, appOptions{store: store, cacheTTL: time.Minute}))
	defer server.Close()

	warm, err := http.Get(server.URL + "/api/v1/grades/5/catalog")
	require.NoError(t, err)
	warm.Body.Close()
	require.Equal(t, http.StatusOK, warm.StatusCode)

	names, docs := store.nameReads.Load(), store.docReads.Load()
	require.Positive(t, docs)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			resp, err := http.Get(server.URL + "/api/v1/grades/5/catalog")
			if assert.NoError(t, err) {
				resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, names, store.nameReads.Load())
	assert.Equal(t, docs, store.docReads.Load())
}

// TestConcurrent_CategoryFetchIsBounded verifies category queries never
// exceed the configured concurrency.
func TestConcurrent_CategoryFetchIsBounded(t *testing.T) {
	store := &instrumentedStore{ContentStore: fixtureStore(t), delay: 20 * time.Millisecond}

	svc := app.NewCatalogService(app.CatalogServiceConfig{
		Store:       store,
		Concurrency: 2,
		Logger:      discardLogger(),
	})

	slides, err := svc.Slides(context.Background(), 5)
	require.NoError(t, err)
	require.NotEmpty(t, slides)

	assert.Equal(t, int32(4), store.docReads.Load(), "one query per slide category")
	assert.LessOrEqual(t, store.maxFlight.Load(), int32(2))
	assert.Equal(t, int32(2), store.maxFlight.Load())
}

// TestConcurrent_ContextCancellation verifies a slow store gives up when
// the caller's deadline passes.
func TestConcurrent_ContextCancellation(t *testing.T) {
	store := &instrumentedStore{ContentStore: fixtureStore(t), delay: 5 * time.Second}

	svc := app.NewCatalogService(app.CatalogServiceConfig{Store: store, Logger: discardLogger()})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Catalog(ctx, 6)

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, domain.IsUnavailable(err), "got %v", err)
}
