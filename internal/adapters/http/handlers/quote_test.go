package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/dto"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupQuoteRouter serves the quote routes over [A, B, C] anchored at
// 2025-09-17 with the clock pinned to now.
func setupQuoteRouter(t *testing.T, now time.Time) *gin.Engine {
	t.Helper()

	istanbul, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	quotes, err := domain.NewQuoteList([]domain.Quote{
		{Author: "Yunus Emre", Text: "A", Source: "Divan"},
		{Author: "Mevlana", Text: "B", Source: "https://example.org/mesnevi"},
		{Author: "Hacı Bektaş", Text: "C"},
	})
	require.NoError(t, err)

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:   quotes,
		Location: istanbul,
		Anchor:   domain.MustCalendarDate(2025, time.September, 17),
		Clock:    ports.FixedClock{At: now},
		Logger:   discardLogger(),
	})

	router := gin.New()
	NewQuoteHandler(service).RegisterRoutes(router.Group("/api/v1"))

	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

func TestQuoteHandler_Today(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantQuote string
		wantDate  string
	}{
		{
			name:      "anchor day",
			now:       time.Date(2025, time.September, 17, 9, 0, 0, 0, time.UTC),
			wantQuote: "A",
			wantDate:  "2025-09-17",
		},
		{
			// 22:30 UTC is already the next day in Istanbul (UTC+3).
			name:      "late UTC evening rolls over in Istanbul",
			now:       time.Date(2025, time.September, 17, 22, 30, 0, 0, time.UTC),
			wantQuote: "B",
			wantDate:  "2025-09-18",
		},
		{
			name:      "cycle wraps",
			now:       time.Date(2025, time.September, 20, 12, 0, 0, 0, time.UTC),
			wantQuote: "A",
			wantDate:  "2025-09-20",
		},
		{
			name:      "before anchor clamps to first",
			now:       time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC),
			wantQuote: "A",
			wantDate:  "2025-09-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(setupQuoteRouter(t, tt.now), "/api/v1/quotes/today")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			var resp dto.QuoteResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantQuote, resp.Quote)
			assert.Equal(t, tt.wantDate, resp.Date)
			assert.Equal(t, "2025-09-17", resp.Anchor)
			assert.Equal(t, "Europe/Istanbul", resp.TimeZone)
			assert.Equal(t, 3, resp.Total)
		})
	}
}

func TestQuoteHandler_On(t *testing.T) {
	router := setupQuoteRouter(t, time.Date(2025, time.September, 17, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		date       string
		wantStatus int
		wantQuote  string
	}{
		{"2025-09-17", http.StatusOK, "A"},
		{"2025-09-18", http.StatusOK, "B"},
		{"2025-09-19", http.StatusOK, "C"},
		{"2025-09-20", http.StatusOK, "A"},
		{"2025-09-10", http.StatusOK, "A"},
		{"2025-02-30", http.StatusBadRequest, ""},
		{"yesterday", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			w := get(router, "/api/v1/quotes/on/"+tt.date)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				var errResp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.Equal(t, dto.ErrorCodeValidation, errResp.Error.Code)
				assert.Contains(t, errResp.Error.Details, "date")

				return
			}

			var resp dto.QuoteResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantQuote, resp.Quote)
			assert.Equal(t, tt.date, resp.Date)
		})
	}
}

func TestQuoteHandler_On_SourceIsLink(t *testing.T) {
	router := setupQuoteRouter(t, time.Now())

	var resp dto.QuoteResponse
	w := get(router, "/api/v1/quotes/on/2025-09-18")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.SourceIsLink)
	assert.Equal(t, "Mevlana", resp.Author)
}

func TestQuoteHandler_Schedule(t *testing.T) {
	router := setupQuoteRouter(t, time.Date(2025, time.September, 18, 12, 0, 0, 0, time.UTC))

	t.Run("defaults to a week from today", func(t *testing.T) {
		w := get(router, "/api/v1/quotes/schedule")
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ScheduleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2025-09-18", resp.From)
		assert.Equal(t, dto.DefaultScheduleDays, resp.Days)
		require.Len(t, resp.Quotes, dto.DefaultScheduleDays)

		got := make([]string, 0, len(resp.Quotes))
		for _, q := range resp.Quotes {
			got = append(got, q.Quote)
		}

		assert.Equal(t, []string{"B", "C", "A", "B", "C", "A", "B"}, got)
	})

	t.Run("explicit range", func(t *testing.T) {
		w := get(router, "/api/v1/quotes/schedule?from=2025-09-16&days=3")
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ScheduleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Quotes, 3)
		assert.Equal(t, "A", resp.Quotes[0].Quote) // pre-anchor clamp
		assert.Equal(t, "A", resp.Quotes[1].Quote)
		assert.Equal(t, "B", resp.Quotes[2].Quote)
		assert.True(t, resp.Quotes[0].BeforeAnchor)
		assert.False(t, resp.Quotes[1].BeforeAnchor)
	})

	t.Run("rejects out of range days", func(t *testing.T) {
		w := get(router, "/api/v1/quotes/schedule?days=400")
		require.Equal(t, http.StatusBadRequest, w.Code)

		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, dto.ErrorCodeValidation, errResp.Error.Code)
		assert.Equal(t, "must be at most 366", errResp.Error.Details["days"])
	})

	t.Run("rejects malformed days", func(t *testing.T) {
		w := get(router, "/api/v1/quotes/schedule?days=lots")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrorCodeBadRequest)
	})
}
