package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/classroom-viewer/internal/platform/logging"
)

// ContextKeyTraceID is the gin context key that overrides the trace id in responses.
const ContextKeyTraceID = "trace_id"

const headerRequestID = "X-Request-ID"

// HandleError writes the error envelope for err and logs server-side failures.
func HandleError(c *gin.Context, err error) {
	status, resp := FromDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"error", err.Error(),
			"status", status,
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// GetTraceID returns the id to echo in error envelopes: an explicit
// trace_id context value, then the active span, then the request id header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		s, _ := v.(string)
		return s
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.Request.Header.Get(headerRequestID)
}

// RespondWithValidationErrors writes a 400 with field-level messages.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fieldErrors)
	resp.TraceID = GetTraceID(c)

	c.JSON(http.StatusBadRequest, resp)
}

// RespondWithErrorCode writes an envelope for an adapter-level error code.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message)
	resp.TraceID = GetTraceID(c)

	c.JSON(statusForCode(code), resp)
}
