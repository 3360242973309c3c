package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxKeyRequestID     ctxKey = "request_id"
	ctxKeyCorrelationID ctxKey = "correlation_id"
)

// ContextWithRequestID stores the inbound request id for outbound calls.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// ContextWithCorrelationID stores the page-load correlation id for outbound calls.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

// RequestIDFromContext returns the request id, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	return idValue(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext returns the correlation id, or "" outside a request.
func CorrelationIDFromContext(ctx context.Context) string {
	return idValue(ctx, ctxKeyCorrelationID)
}

// PropagateIDs copies the request and correlation ids carried by ctx onto an
// outbound request, so a quote-host log line can be tied back to the API
// call that fetched the list. Ids already present on h are replaced.
func PropagateIDs(ctx context.Context, h http.Header) {
	if id := RequestIDFromContext(ctx); id != "" {
		h.Set(HeaderRequestID, id)
	}

	if id := CorrelationIDFromContext(ctx); id != "" {
		h.Set(HeaderCorrelationID, id)
	}
}

func idValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}

// idMiddleware reads header (or mints a uuid), echoes it on the response and
// stores it on both the gin context and the request context.
func idMiddleware(header, ginKey string, enrich func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ginKey, id)
		c.Header(header, id)
		c.Request = c.Request.WithContext(enrich(c.Request.Context(), id))

		c.Next()
	}
}

func ginID(c *gin.Context, key string) string {
	v, _ := c.Get(key)
	id, _ := v.(string)

	return id
}
