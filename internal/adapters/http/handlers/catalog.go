package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/dto"
	"github.com/jsamuelsen/classroom-viewer/internal/app"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// CatalogHandler serves the per-grade slide and test listings.
type CatalogHandler struct {
	service *app.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Grades handles GET /api/v1/grades
//
// @Summary List supported grades
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.GradesResponse
// @Router /api/v1/grades [get]
func (h *CatalogHandler) Grades(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewGradesResponse(domain.Grades()))
}

// Slides handles GET /api/v1/grades/:grade/slides
//
// @Summary List slide categories for a grade
// @Tags catalog
// @Produce json
// @Param grade path int true "Grade (5-8)"
// @Success 200 {array} dto.SlideCategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/grades/{grade}/slides [get]
func (h *CatalogHandler) Slides(c *gin.Context) {
	grade, ok := gradeParam(c)
	if !ok {
		return
	}

	categories, err := h.service.Slides(c.Request.Context(), grade)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSlideCategories(categories))
}

// Tests handles GET /api/v1/grades/:grade/tests
//
// @Summary List test categories for a grade
// @Tags catalog
// @Produce json
// @Param grade path int true "Grade (5-8)"
// @Success 200 {array} dto.TestCategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/grades/{grade}/tests [get]
func (h *CatalogHandler) Tests(c *gin.Context) {
	grade, ok := gradeParam(c)
	if !ok {
		return
	}

	categories, err := h.service.Tests(c.Request.Context(), grade)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTestCategories(categories))
}

// Catalog handles GET /api/v1/grades/:grade/catalog
// Slides and tests are fetched concurrently.
//
// @Summary Get the full catalog for a grade
// @Tags catalog
// @Produce json
// @Param grade path int true "Grade (5-8)"
// @Success 200 {object} dto.CatalogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/grades/{grade}/catalog [get]
func (h *CatalogHandler) Catalog(c *gin.Context) {
	grade, ok := gradeParam(c)
	if !ok {
		return
	}

	catalog, err := h.service.Catalog(c.Request.Context(), grade)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCatalogResponse(catalog))
}

// RegisterRoutes mounts the catalog endpoints under rg.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/grades", h.Grades)

	grades := rg.Group("/grades/:grade")
	grades.GET("/slides", h.Slides)
	grades.GET("/tests", h.Tests)
	grades.GET("/catalog", h.Catalog)
}

// gradeParam parses :grade, writing a 400 and returning false when invalid.
func gradeParam(c *gin.Context) (domain.Grade, bool) {
	grade, err := domain.ParseGrade(c.Param("grade"))
	if err != nil {
		dto.HandleError(c, err)
		return 0, false
	}

	return grade, true
}
