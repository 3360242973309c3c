package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/dto"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// QuoteHandler handles quote-of-the-day endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// Today handles GET /api/v1/quotes/today
// Returns the quote for the current date in the configured zone.
//
// @Summary Get today's quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/quotes/today [get]
func (h *QuoteHandler) Today(c *gin.Context) {
	dq, err := h.service.Today(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.NewQuoteResponse(dq))
}

// On handles GET /api/v1/quotes/on/:date
// Returns the quote shown on a given calendar date.
//
// @Summary Get the quote for a date
// @Tags quotes
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/on/{date} [get]
func (h *QuoteHandler) On(c *gin.Context) {
	date, err := domain.ParseCalendarDate(c.Param("date"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dq, err := h.service.On(c.Request.Context(), date)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(dq))
}

// Schedule handles GET /api/v1/quotes/schedule?from=YYYY-MM-DD&days=N
// Returns consecutive daily quotes. from defaults to today, days to a week.
//
// @Summary List upcoming quotes
// @Tags quotes
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param days query int false "Number of days (1-366)"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/schedule [get]
func (h *QuoteHandler) Schedule(c *gin.Context) {
	var query dto.ScheduleQuery

	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		if errors.Is(err, dto.ErrBinding) {
			dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "malformed query string")
			return
		}

		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))

		return
	}

	var from domain.CalendarDate

	if query.From != "" {
		parsed, err := domain.ParseCalendarDate(query.From)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		from = parsed
	}

	quotes, err := h.service.Schedule(c.Request.Context(), from, query.DaysOrDefault())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScheduleResponse(quotes))
}

// RegisterRoutes mounts the quote endpoints under rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("/today", h.Today)
	quotes.GET("/on/:date", h.On)
	quotes.GET("/schedule", h.Schedule)
}
