// Package dto holds the JSON shapes of the viewer API: quote and catalog
// responses, query binding rules and the error envelope.
package dto

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail carries the machine code, a message safe to show in the viewer,
// and per-field messages for validation failures.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

const (
	// ErrorCodeNotFound is an unknown route or record.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeValidation is a bad grade, date, day count or quote list.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeUnavailable means the content store or quote host could not answer.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal covers everything else, including calendar arithmetic faults.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout is written by the request timeout middleware.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest is a malformed query string or a disallowed method.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// NewErrorResponse creates an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails creates an envelope with per-field messages.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.Error.Details = details

	return resp
}

// FromDomainError maps a domain error to a status code and envelope.
// Validation keeps the offending field, unavailability names the dependency,
// and anything unrecognized becomes a 500 whose message hides the cause.
func FromDomainError(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var ve *domain.ValidationError
		if errors.As(err, &ve) && ve.Field != "" {
			resp.Error.Details = map[string]string{ve.Field: ve.Message}
		}

		return http.StatusBadRequest, resp

	case domain.IsUnavailable(err):
		resp := NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

		var ue *domain.UnavailableError
		if errors.As(err, &ue) {
			resp.Error.Details = map[string]string{"service": ue.Service}
		}

		return http.StatusServiceUnavailable, resp

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// statusForCode is the status for envelopes built from a bare code rather
// than a domain error.
func statusForCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
