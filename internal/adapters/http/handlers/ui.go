package handlers

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// UIHandler serves the single-page viewer and its assets.
type UIHandler struct {
	index  []byte
	assets http.FileSystem
}

// NewUIHandler reads index.html from assets once. It fails if the file is missing.
func NewUIHandler(assets fs.FS) (*UIHandler, error) {
	index, err := fs.ReadFile(assets, indexFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", indexFile, err)
	}

	return &UIHandler{index: index, assets: http.FS(assets)}, nil
}

// Index handles GET /.
func (h *UIHandler) Index(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}

// RegisterRoutes mounts / and /static/* on the engine.
func (h *UIHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", h.Index)
	engine.StaticFS("/static", h.assets)
}
