// Package domain contains core business entities and rules.
package domain

import (
	"regexp"
	"slices"
)

// linkPattern matches sources that should be rendered as hyperlinks.
var linkPattern = regexp.MustCompile(`(?i)^https?://`)

// Quote is a single entry of the quote-of-the-day catalog.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// Author is who said or wrote the quote.
	Author string

	// Text is the quotation itself.
	Text string

	// Source is an optional citation; it may be a URL.
	Source string
}

// SourceIsLink reports whether Source is an http(s) URL.
func (q Quote) SourceIsLink() bool {
	return linkPattern.MatchString(q.Source)
}

// QuoteList is the ordered, immutable catalog cycled through one entry per day.
// The zero value is an empty list and is rejected by the selector.
type QuoteList struct {
	quotes []Quote
}

// NewQuoteList validates and copies quotes into an immutable list.
// An empty input is a data validation failure.
func NewQuoteList(quotes []Quote) (QuoteList, error) {
	if len(quotes) == 0 {
		return QuoteList{}, NewValidationError("quotes", "quote list is empty")
	}

	return QuoteList{quotes: slices.Clone(quotes)}, nil
}

// Len returns the number of quotes in the list.
func (l QuoteList) Len() int {
	return len(l.quotes)
}

// At returns the quote at index i. It panics if i is out of range.
func (l QuoteList) At(i int) Quote {
	return l.quotes[i]
}

// All returns a copy of the quotes in cycle order.
func (l QuoteList) All() []Quote {
	return slices.Clone(l.quotes)
}
