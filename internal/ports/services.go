// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrUnavailable, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// QuoteSource loads the ordered quote catalog.
//
// Implementations read from a local file, the embedded asset bundle, or
// a static host over HTTP. Every call reads the source afresh; callers
// that want caching add it themselves.
type QuoteSource interface {
	// LoadQuotes returns the full quote list in cycle order.
	// A missing, malformed, non-list or empty document returns a
	// domain.ErrValidation error. Transport failures return
	// domain.ErrUnavailable.
	LoadQuotes(ctx context.Context) (domain.QuoteList, error)
}

// ContentStore reads category names and content documents from the
// backing document database.
type ContentStore interface {
	// CategoryNames returns the "name" field of every document in the
	// given category-name collection. Documents without a name are skipped.
	CategoryNames(ctx context.Context, collection string) ([]string, error)

	// DocumentsByGrade returns every document of the named category
	// collection whose grade equals grade. An unknown collection yields
	// an empty result, not an error.
	DocumentsByGrade(ctx context.Context, collection string, grade domain.Grade) ([]domain.ContentDocument, error)
}
