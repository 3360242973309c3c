// Package store holds helpers shared by the content store adapters.
//
// Documents are decoded from loosely typed field maps (Firestore
// Data(), bson.M, YAML) so that records written by hand with a string
// grade or an integer duration still load.
package store

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// Field names used by the viewer's collections.
const (
	FieldName          = "name"
	FieldLink          = "link"
	FieldType          = "type"
	FieldGrade         = "grade"
	FieldCreatedAt     = "createdAt"
	FieldDuration      = "duration"
	FieldTestmakerLink = "testmakerLink"
)

// HealthName is the readiness check name of every content store.
const HealthName = "content-store"

// timeLike covers bson primitive.DateTime and similar wrappers.
type timeLike interface {
	Time() time.Time
}

// DocumentFromFields converts a raw record. Unknown or mistyped fields are
// left at their zero value.
func DocumentFromFields(f map[string]any) domain.ContentDocument {
	doc := domain.ContentDocument{
		Name:          String(f[FieldName]),
		Link:          strings.TrimSpace(String(f[FieldLink])),
		Type:          String(f[FieldType]),
		TestmakerLink: String(f[FieldTestmakerLink]),
	}

	if g, ok := Int(f[FieldGrade]); ok {
		doc.Grade = g
	}

	if t, ok := Time(f[FieldCreatedAt]); ok {
		doc.CreatedAt = &t
	}

	if d, ok := Float(f[FieldDuration]); ok {
		doc.DurationMin = &d
	}

	return doc
}

// CategoryName returns the non-blank name of a category-name record.
func CategoryName(f map[string]any) (string, bool) {
	name := String(f[FieldName])

	return name, strings.TrimSpace(name) != ""
}

// String returns v when it is a string, else "".
func String(v any) string {
	s, _ := v.(string)

	return s
}

// Int accepts any integral number, or a float or numeric string with no
// fractional part.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}

	return 0, false
}

// Float accepts any finite number or numeric string. NaN and the
// infinities are rejected.
func Float(v any) (float64, bool) {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}

		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// Time accepts time.Time, pointer and wrapper forms, and RFC 3339 strings.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t != nil {
			return *t, true
		}
	case timeLike:
		return t.Time(), true
	case string:
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(t)); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// MatchesGrade reports whether the record's grade field equals g.
func MatchesGrade(f map[string]any, g domain.Grade) bool {
	n, ok := Int(f[FieldGrade])

	return ok && n == int(g)
}
