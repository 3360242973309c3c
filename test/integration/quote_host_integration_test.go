//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/classroom-viewer/internal/adapters/http"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/middleware"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

// TestQuoteHost_RecoversFromTransientFailures verifies the list loads
// after the host fails twice.
func TestQuoteHost_RecoversFromTransientFailures(t *testing.T) {
	var attempts atomic.Int32

	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		_, _ = w.Write([]byte(hostedQuotes))
	}))
	defer host.Close()

	list, err := app.LoadQuotes(context.Background(), quoteHostClient(t, host.URL), discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, list.Len())
	assert.Equal(t, int32(3), attempts.Load())
}

// TestQuoteHost_ErrorMapping verifies how host responses surface.
func TestQuoteHost_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"not found is unavailable", http.StatusNotFound, `not here`, domain.IsUnavailable},
		{"forbidden is unavailable", http.StatusForbidden, ``, domain.IsUnavailable},
		{"outage is unavailable", http.StatusServiceUnavailable, ``, domain.IsUnavailable},
		{"empty list is validation", http.StatusOK, `[]`, domain.IsValidation},
		{"object is validation", http.StatusOK, `{"quotes": []}`, domain.IsValidation},
		{"missing text is validation", http.StatusOK, `[{"author": "X"}]`, domain.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer host.Close()

			_, err := app.LoadQuotes(context.Background(), quoteHostClient(t, host.URL), discardLogger())
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

// TestQuoteHost_RequestHeaders verifies the list is fetched uncached and
// carries the caller's request ID.
func TestQuoteHost_RequestHeaders(t *testing.T) {
	var got http.Header

	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(hostedQuotes))
	}))
	defer host.Close()

	ctx := middleware.ContextWithRequestID(context.Background(), "req-quote-host")

	_, err := quoteHostClient(t, host.URL).LoadQuotes(ctx)
	require.NoError(t, err)

	assert.Equal(t, "no-store", got.Get("Cache-Control"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "req-quote-host", got.Get(middleware.HeaderRequestID))
}

// TestQuoteHost_OpenCircuitFailsReadiness verifies readiness turns 503
// once the quote host's breaker opens.
func TestQuoteHost_OpenCircuitFailsReadiness(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer host.Close()

	client := quoteHostClient(t, host.URL)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(client))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName:   "classroom-viewer",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("classroom-viewer", "test", "none", "now")),
	})

	ready := func() int {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

		return w.Code
	}

	require.Equal(t, http.StatusOK, ready())

	for range 2 {
		_, err := client.LoadQuotes(context.Background())
		require.Error(t, err)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Checks map[string]*ports.CheckResult `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body.Checks, "quote-host")
	assert.Contains(t, body.Checks["quote-host"].Message, "circuit breaker")

	_, err := client.LoadQuotes(context.Background())
	assert.True(t, domain.IsUnavailable(err))
}
