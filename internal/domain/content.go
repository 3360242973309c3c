package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Grade bounds served by the viewer.
const (
	MinGrade = 5
	MaxGrade = 8
)

// Record types stored in the "type" field of content documents.
const (
	TypeSlide = "slayt"
	TypeTest  = "test"
)

// UntitledName replaces a missing document name.
const UntitledName = "Adsız"

// Grade is a school year the catalog is filtered by.
type Grade int

// ParseGrade parses and range-checks a grade.
func ParseGrade(s string) (Grade, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, NewValidationErrorWithValue("grade", "must be an integer", s)
	}

	g := Grade(n)

	return g, g.Validate()
}

// Validate checks the grade is one the viewer serves.
func (g Grade) Validate() error {
	if g < MinGrade || g > MaxGrade {
		return NewValidationErrorWithValue("grade",
			fmt.Sprintf("must be between %d and %d", MinGrade, MaxGrade), int(g))
	}

	return nil
}

// Grades lists every grade in display order.
func Grades() []Grade {
	grades := make([]Grade, 0, MaxGrade-MinGrade+1)
	for g := MinGrade; g <= MaxGrade; g++ {
		grades = append(grades, Grade(g))
	}

	return grades
}

// ContentDocument is a raw record read from a category collection.
// Pointer fields are optional in the store.
type ContentDocument struct {
	Name          string
	Link          string
	Type          string
	Grade         int
	CreatedAt     *time.Time
	DurationMin   *float64
	TestmakerLink string
}

// Slide is an instructional slide deck.
type Slide struct {
	Name string
	Link string
}

// SlideCategory groups slides under a category name.
type SlideCategory struct {
	Category string
	Slides   []Slide
}

// Clone returns a copy that shares no slice with c.
func (c SlideCategory) Clone() SlideCategory {
	c.Slides = slices.Clone(c.Slides)
	return c
}

// Test is a timed test. Closing is nil when the record has no creation time.
type Test struct {
	Name          string
	Link          string
	Closing       *time.Time
	TestmakerLink string
}

// TestCategory groups tests under a category name.
type TestCategory struct {
	Category string
	Tests    []Test
}

// Clone returns a copy that shares no slice or closing time with c.
func (c TestCategory) Clone() TestCategory {
	c.Tests = slices.Clone(c.Tests)

	for i := range c.Tests {
		if closing := c.Tests[i].Closing; closing != nil {
			t := *closing
			c.Tests[i].Closing = &t
		}
	}

	return c
}

// Catalog is the full listing for one grade.
type Catalog struct {
	Grade  Grade
	Slides []SlideCategory
	Tests  []TestCategory
}

// NormalizeType trims and lower-cases a record type for comparison.
func NormalizeType(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// NormalizeURL prefixes bare hostnames with https://.
// Blank values and the "-" placeholder yield "".
func NormalizeURL(u string) string {
	s := strings.TrimSpace(u)
	if s == "" || s == "-" {
		return ""
	}

	if linkPattern.MatchString(s) {
		return s
	}

	return "https://" + s
}

// SlideFrom converts a document into a slide. ok is false for non-slide records.
func SlideFrom(doc ContentDocument) (slide Slide, ok bool) {
	if NormalizeType(doc.Type) != TypeSlide {
		return Slide{}, false
	}

	// "" and a missing name both become UntitledName.
	return Slide{Name: nameOrUntitled(doc.Name), Link: doc.Link}, true
}

// TestFrom converts a document into a test. ok is false for non-test records.
// Closing is CreatedAt plus the duration in minutes; a missing duration counts as zero.
func TestFrom(doc ContentDocument) (test Test, ok bool) {
	if NormalizeType(doc.Type) != TypeTest {
		return Test{}, false
	}

	var closing *time.Time

	if doc.CreatedAt != nil {
		minutes := 0.0
		if doc.DurationMin != nil {
			minutes = *doc.DurationMin
		}

		end := doc.CreatedAt.Add(time.Duration(minutes * float64(time.Minute)))
		closing = &end
	}

	return Test{
		Name:          nameOrUntitled(doc.Name),
		Link:          doc.Link,
		Closing:       closing,
		TestmakerLink: NormalizeURL(doc.TestmakerLink),
	}, true
}

// nameOrUntitled also replaces an explicit empty name; a blank heading is
// never useful in the viewer.
func nameOrUntitled(name string) string {
	if name == "" {
		return UntitledName
	}

	return name
}
