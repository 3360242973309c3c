package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// maxErrorBody caps how much of a failed response is inspected.
const maxErrorBody = 4 << 10

// ErrorResponse is the error body shape downstream hosts commonly return,
// either nested ({"error":{"code","message"}}) or flat ({"code","message"}).
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetCode returns the nested code, falling back to the flat one.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the nested message, falling back to the flat one.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error body. It returns nil for empty,
// non-JSON or message-less bodies.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError turns a client error or a non-2xx response into a domain
// Unavailable error naming serviceName and operation. It returns nil for
// a 2xx response.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	message := messageForStatus(resp.StatusCode, operation)

	if errResp := ParseErrorResponse(resp.Body); errResp != nil && errResp.GetMessage() != "" {
		message = fmt.Sprintf("%s: %s", message, errResp.GetMessage())
	}

	return domain.NewUnavailableError(serviceName, message)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, "circuit breaker open during "+operation)
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, "max retries exceeded during "+operation)
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func messageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return operation + ": resource not found"
	case http.StatusUnauthorized, http.StatusForbidden:
		return operation + ": access denied"
	case http.StatusTooManyRequests:
		return operation + ": rate limit exceeded"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}
