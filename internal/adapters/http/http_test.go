package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/dto"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/middleware"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store/memory"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/config"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
	"github.com/jsamuelsen/classroom-viewer/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  2 * time.Second,
		MaxRequestSize:  1 << 20,
	}
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	logger := discardLogger()

	srv := New(cfg, "test", logger)

	require.NotNil(t, srv)
	assert.IsType(t, &gin.Engine{}, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.Equal(t, cfg.ReadTimeout, srv.httpServer.ReadHeaderTimeout)
}

func TestServerStartListenError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	cfg := testServerConfig()
	cfg.Port = taken.Addr().(*net.TCPAddr).Port

	errCh := New(cfg, "test", discardLogger()).Start()

	err, ok := <-errCh
	require.True(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

func TestServerServeShutdown(t *testing.T) {
	srv := New(testServerConfig(), "test", discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := srv.Serve(ln)

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestMaxBodySize(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 8

	srv := New(cfg, "test", discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("tiny")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("far more than eight bytes")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

// newTestRouter wires every handler over the embedded UI, three quotes
// and a one-category memory store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	istanbul, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	quotes, err := domain.NewQuoteList([]domain.Quote{{Author: "X", Text: "A"}, {Author: "Y", Text: "B"}, {Author: "Z", Text: "C"}})
	require.NoError(t, err)

	quoteSvc := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:   quotes,
		Location: istanbul,
		Anchor:   domain.MustCalendarDate(2025, time.September, 17),
		Clock:    ports.FixedClock{At: time.Date(2025, time.September, 19, 8, 0, 0, 0, time.UTC)},
		Logger:   discardLogger(),
	})

	store := memory.New()
	store.Put(app.DefaultSlideCategoriesCollection, map[string]any{"name": "Kesirler"})
	store.Put("Kesirler", map[string]any{"name": "Giriş", "type": "slayt", "grade": 5, "link": "https://s/1"})

	catalogSvc := app.NewCatalogService(app.CatalogServiceConfig{Store: store, Logger: discardLogger()})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(quoteSvc))
	require.NoError(t, registry.Register(store))

	ui, err := handlers.NewUIHandler(web.Static())
	require.NoError(t, err)

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		ServiceName:    "classroom-viewer",
		Timeout:        time.Second,
		HealthHandler:  handlers.NewHealthHandler(registry, handlers.NewBuildInfo("classroom-viewer", "1.0.0", "abc", "now")),
		QuoteHandler:   handlers.NewQuoteHandler(quoteSvc),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc),
		UIHandler:      ui,
	})

	return engine
}

func serve(engine http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	return w
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := newTestRouter(t)

	tests := []struct {
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{http.MethodGet, "/", http.StatusOK, "Ders Materyalleri"},
		{http.MethodGet, "/static/" + web.QuotesFile, http.StatusOK, "author"},
		{http.MethodGet, "/api/v1/quotes/today", http.StatusOK, `"quote":"C"`},
		{http.MethodGet, "/api/v1/quotes/on/2025-09-20", http.StatusOK, `"quote":"A"`},
		{http.MethodGet, "/api/v1/quotes/schedule?days=2", http.StatusOK, `"from":"2025-09-19"`},
		{http.MethodGet, "/api/v1/grades", http.StatusOK, `"grades":[5,6,7,8]`},
		{http.MethodGet, "/api/v1/grades/5/catalog", http.StatusOK, `"category":"Kesirler"`},
		{http.MethodGet, "/api/v1/grades/5/slides", http.StatusOK, `"Giriş"`},
		{http.MethodGet, "/api/v1/grades/5/tests", http.StatusOK, `[]`},
		{http.MethodGet, "/api/v1/grades/12/catalog", http.StatusBadRequest, dto.ErrorCodeValidation},
		{http.MethodGet, "/-/live", http.StatusOK, "ok"},
		{http.MethodGet, "/-/ready", http.StatusOK, "content-store"},
		{http.MethodGet, "/-/build", http.StatusOK, "classroom-viewer"},
		{http.MethodGet, "/nope", http.StatusNotFound, dto.ErrorCodeNotFound},
		{http.MethodPost, "/api/v1/quotes/today", http.StatusMethodNotAllowed, dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(engine, tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestSetupRouter_EchoesIDs(t *testing.T) {
	engine := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/grades/4/slides", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-abc")
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-abc", w.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-abc", resp.TraceID)
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{ServiceName: "classroom-viewer"})
	})

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/quotes/today").Code)
}
