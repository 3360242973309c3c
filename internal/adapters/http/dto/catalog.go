package dto

import (
	"time"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// SlideResponse is a single slide deck link.
type SlideResponse struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// SlideCategoryResponse groups slides under a category.
type SlideCategoryResponse struct {
	Category string          `json:"category"`
	Slides   []SlideResponse `json:"slides"`
}

// TestResponse is a timed test. Closing is RFC 3339 in UTC.
type TestResponse struct {
	Name          string `json:"name"`
	Link          string `json:"link"`
	Closing       string `json:"closing,omitempty"`
	TestmakerLink string `json:"testmakerLink,omitempty"`
}

// TestCategoryResponse groups tests under a category.
type TestCategoryResponse struct {
	Category string         `json:"category"`
	Tests    []TestResponse `json:"tests"`
}

// GradesResponse lists the grades the viewer offers.
type GradesResponse struct {
	Grades []int `json:"grades"`
}

// NewGradesResponse converts the supported grades.
func NewGradesResponse(grades []domain.Grade) GradesResponse {
	out := make([]int, 0, len(grades))
	for _, g := range grades {
		out = append(out, int(g))
	}

	return GradesResponse{Grades: out}
}

// CatalogResponse is the full listing of one grade.
type CatalogResponse struct {
	Grade  int                     `json:"grade"`
	Slides []SlideCategoryResponse `json:"slides"`
	Tests  []TestCategoryResponse  `json:"tests"`
}

// NewSlideCategories converts slide categories, never returning nil.
func NewSlideCategories(categories []domain.SlideCategory) []SlideCategoryResponse {
	out := make([]SlideCategoryResponse, 0, len(categories))

	for _, cat := range categories {
		slides := make([]SlideResponse, 0, len(cat.Slides))
		for _, s := range cat.Slides {
			slides = append(slides, SlideResponse{Name: s.Name, Link: s.Link})
		}

		out = append(out, SlideCategoryResponse{Category: cat.Category, Slides: slides})
	}

	return out
}

// NewTestCategories converts test categories, never returning nil.
func NewTestCategories(categories []domain.TestCategory) []TestCategoryResponse {
	out := make([]TestCategoryResponse, 0, len(categories))

	for _, cat := range categories {
		tests := make([]TestResponse, 0, len(cat.Tests))
		for _, t := range cat.Tests {
			tests = append(tests, TestResponse{
				Name:          t.Name,
				Link:          t.Link,
				Closing:       formatClosing(t.Closing),
				TestmakerLink: t.TestmakerLink,
			})
		}

		out = append(out, TestCategoryResponse{Category: cat.Category, Tests: tests})
	}

	return out
}

// NewCatalogResponse converts a grade catalog.
func NewCatalogResponse(c *domain.Catalog) CatalogResponse {
	return CatalogResponse{
		Grade:  int(c.Grade),
		Slides: NewSlideCategories(c.Slides),
		Tests:  NewTestCategories(c.Tests),
	}
}

func formatClosing(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}
