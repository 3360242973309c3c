package dto

import "github.com/jsamuelsen/classroom-viewer/internal/app"

// DefaultScheduleDays is used when the days query parameter is omitted.
const DefaultScheduleDays = 7

// QuoteResponse is the daily quote together with how it was picked.
type QuoteResponse struct {
	Quote        string `json:"quote"`
	Author       string `json:"author"`
	Source       string `json:"source,omitempty"`
	SourceIsLink bool   `json:"sourceIsLink"`
	Index        int    `json:"index"`
	Date         string `json:"date"`
	SerialDay    int64  `json:"serialDay"`
	Anchor       string `json:"anchor"`
	TimeZone     string `json:"timeZone"`
	Total        int    `json:"total"`
	BeforeAnchor bool   `json:"beforeAnchor,omitempty"`
}

// ScheduleResponse lists consecutive daily quotes.
type ScheduleResponse struct {
	From   string          `json:"from"`
	Days   int             `json:"days"`
	Quotes []QuoteResponse `json:"quotes"`
}

// ScheduleQuery is bound from the schedule query string. An empty From means today.
type ScheduleQuery struct {
	From string `form:"from" json:"from" validate:"omitempty,calendardate"`
	Days int    `form:"days" json:"days" validate:"omitempty,min=1,max=366"`
}

// DaysOrDefault returns Days, or DefaultScheduleDays when unset.
func (q ScheduleQuery) DaysOrDefault() int {
	if q.Days == 0 {
		return DefaultScheduleDays
	}

	return q.Days
}

// NewQuoteResponse converts a selected quote to its wire form.
func NewQuoteResponse(dq *app.DailyQuote) QuoteResponse {
	return QuoteResponse{
		Quote:        dq.Quote.Text,
		Author:       dq.Quote.Author,
		Source:       dq.Quote.Source,
		SourceIsLink: dq.Quote.SourceIsLink(),
		Index:        dq.Index,
		Date:         dq.Date.String(),
		SerialDay:    dq.SerialDay,
		Anchor:       dq.Anchor.String(),
		TimeZone:     dq.TimeZone,
		Total:        dq.Total,
		BeforeAnchor: dq.BeforeAnchor,
	}
}

// NewScheduleResponse converts a run of daily quotes.
func NewScheduleResponse(quotes []app.DailyQuote) ScheduleResponse {
	resp := ScheduleResponse{
		Days:   len(quotes),
		Quotes: make([]QuoteResponse, 0, len(quotes)),
	}

	if len(quotes) > 0 {
		resp.From = quotes[0].Date.String()
	}

	for i := range quotes {
		resp.Quotes = append(resp.Quotes, NewQuoteResponse(&quotes[i]))
	}

	return resp
}
