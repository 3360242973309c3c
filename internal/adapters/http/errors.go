package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/dto"
)

// noRoute answers unknown paths with the JSON envelope instead of gin's text body.
func noRoute(c *gin.Context) {
	dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route "+c.Request.URL.Path+" not found")
}

// noMethod answers a known path requested with an unsupported method.
func noMethod(c *gin.Context) {
	resp := dto.NewErrorResponse(dto.ErrorCodeBadRequest, "method "+c.Request.Method+" not allowed")
	resp.TraceID = dto.GetTraceID(c)

	c.JSON(http.StatusMethodNotAllowed, resp)
}
