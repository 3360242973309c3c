package domain

import "time"

// Selection is the outcome of picking the quote for one calendar day.
type Selection struct {
	Quote        Quote
	Index        int
	Date         CalendarDate
	SerialDay    int64
	AnchorSerial int64
}

// SelectQuote picks the quote for the calendar day that now falls on in loc.
// The anchor date is day zero; days before it clamp to the first quote.
// It is pure and safe for concurrent use.
func SelectQuote(now time.Time, loc *time.Location, anchor CalendarDate, quotes QuoteList) (Quote, error) {
	sel, err := SelectAt(now, loc, anchor, quotes)
	if err != nil {
		return Quote{}, err
	}

	return sel.Quote, nil
}

// SelectAt is SelectQuote with the intermediate values exposed.
func SelectAt(now time.Time, loc *time.Location, anchor CalendarDate, quotes QuoteList) (Selection, error) {
	if quotes.Len() == 0 {
		return Selection{}, NewValidationError("quotes", "quote list is empty")
	}

	date, err := DateIn(now, loc)
	if err != nil {
		return Selection{}, err
	}

	return SelectOn(date, anchor, quotes)
}

// SelectOn picks the quote for an explicit calendar date.
func SelectOn(date, anchor CalendarDate, quotes QuoteList) (Selection, error) {
	if quotes.Len() == 0 {
		return Selection{}, NewValidationError("quotes", "quote list is empty")
	}

	today, err := date.SerialDay()
	if err != nil {
		return Selection{}, err
	}

	anchorSerial, err := anchor.SerialDay()
	if err != nil {
		return Selection{}, err
	}

	idx := IndexFor(today, anchorSerial, quotes.Len())

	return Selection{
		Quote:        quotes.At(idx),
		Index:        idx,
		Date:         date,
		SerialDay:    today,
		AnchorSerial: anchorSerial,
	}, nil
}

// IndexFor maps a serial day to a list index: max(0, day-anchor) mod n.
// n must be positive; callers validate the list first.
func IndexFor(day, anchorSerial int64, n int) int {
	diff := max(day-anchorSerial, 0)

	return int(diff % int64(n))
}
