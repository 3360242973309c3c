package acl

import (
	"context"
	"fmt"
	"io"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/clients"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

// BaseAdapter carries the client and downstream name shared by adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a BaseAdapter.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName returns the downstream name used in errors.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Check reports the downstream unavailable while its circuit is open.
func (a *BaseAdapter) Check(_ context.Context) error {
	if state := a.client.CircuitState(); state == clients.StateOpen {
		return domain.NewUnavailableError(a.serviceName, "circuit breaker "+state.String())
	}

	return nil
}

// Get performs a GET and returns at most limit bytes of a 2xx body.
// Every failure is already a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string, limit int64, opts ...clients.RequestOption) ([]byte, error) {
	resp, err := a.client.Get(ctx, path, opts...)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if mapped := MapHTTPError(resp, nil, a.serviceName, operation); mapped != nil {
		return nil, mapped
	}

	return ReadLimited(resp.Body, limit, a.serviceName, operation)
}

// ReadLimited reads body, failing when it holds more than limit bytes.
func ReadLimited(body io.Reader, limit int64, serviceName, operation string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: reading body: %v", operation, err))
	}

	if int64(len(data)) > limit {
		return nil, domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s: response larger than %d bytes", operation, limit))
	}

	return data, nil
}
