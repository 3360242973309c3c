package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/classroom-viewer/internal/mocks"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func healthRouter(registry ports.HealthRegistry, info BuildInfo) *gin.Engine {
	router := gin.New()
	NewHealthHandler(registry, info).RegisterHealthRoutesOnEngine(router)

	return router
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("classroom-viewer", "1.0.0", "abc123", "2025-09-17T06:00:00Z")

	assert.Equal(t, BuildInfo{
		Service:   "classroom-viewer",
		Version:   "1.0.0",
		Commit:    "abc123",
		BuildTime: "2025-09-17T06:00:00Z",
		GoVersion: runtime.Version(),
	}, bi)
}

func TestHealthHandler_Liveness(t *testing.T) {
	// no CheckAll expectation: liveness must not touch dependencies
	router := healthRouter(mocks.NewMockHealthRegistry(t), BuildInfo{})

	w := get(router, "/-/live")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/-/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
		wantBody   string
	}{
		{
			name: "quotes and store healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"quotes":        {Status: ports.HealthStatusHealthy},
					"content-store": {Status: ports.HealthStatusHealthy},
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"healthy"`,
		},
		{
			name: "store down",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"quotes":        {Status: ports.HealthStatusHealthy},
					"content-store": {Status: ports.HealthStatusUnhealthy, Message: `service "firestore" unavailable: deadline exceeded`},
				},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "deadline exceeded",
		},
		{
			name:       "nothing registered",
			result:     &ports.HealthResult{Status: ports.HealthStatusHealthy, Checks: map[string]*ports.CheckResult{}},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"healthy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			w := get(healthRouter(registry, BuildInfo{}), "/-/ready")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

type failingChecker struct{}

func (failingChecker) Name() string { return "content-store" }

func (failingChecker) Check(context.Context) error {
	return errors.New("mongo: server selection timeout")
}

func TestHealthHandler_Readiness_RealRegistry(t *testing.T) {
	registry := ports.NewHealthRegistry(ports.WithCheckTimeout(time.Second))
	require.NoError(t, registry.Register(failingChecker{}))

	w := get(healthRouter(registry, BuildInfo{}), "/-/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp readinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	require.Contains(t, resp.Checks, "content-store")
	assert.Contains(t, resp.Checks["content-store"].Message, "server selection timeout")
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	info := NewBuildInfo("classroom-viewer", "1.2.3", "def456", "2025-10-01T12:00:00Z")

	w := get(healthRouter(mocks.NewMockHealthRegistry(t), info), "/-/build")
	require.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, info, resp)
}

func TestHealthHandler_Metrics(t *testing.T) {
	w := get(healthRouter(mocks.NewMockHealthRegistry(t), BuildInfo{}), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestHealthHandler_Routes(t *testing.T) {
	router := healthRouter(mocks.NewMockHealthRegistry(t), BuildInfo{})

	got := make(map[string]bool)
	for _, r := range router.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live", "HEAD /-/live",
		"GET /-/ready", "HEAD /-/ready",
		"GET /-/build",
		"GET /-/metrics",
	} {
		assert.True(t, got[want], "missing route: %s", want)
	}
}
