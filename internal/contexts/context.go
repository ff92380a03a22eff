// Package contexts stores request-scoped values in a single context container.
package contexts

import (
	"context"

	"github.com/porticohq/portico/internal/authz"
)

// ContextKey defines the context key type.
type ContextKey string

const (
	// containerContextKey is used to store the context container in the context.
	containerContextKey ContextKey = "context_container"
)

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, principal authz.Principal) context.Context {
	container := getContainer(ctx)
	container.Principal = &principal

	return withContainer(ctx, container)
}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (authz.Principal, bool) {
	container := getContainer(ctx)
	if container.Principal != nil {
		return *container.Principal, true
	}

	return authz.Principal{}, false
}

// MustGetPrincipal retrieves the principal and panics if it is missing.
// Only call it behind the auth middleware.
func MustGetPrincipal(ctx context.Context) authz.Principal {
	p, ok := GetPrincipal(ctx)
	if !ok {
		panic("contexts: no principal in context")
	}

	return p
}

// WithTraceID stores the trace id in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	container := getContainer(ctx)
	container.TraceID = &traceID

	return withContainer(ctx, container)
}

// GetTraceID retrieves the trace id from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.TraceID != nil {
		return *container.TraceID, true
	}

	return "", false
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	container := getContainer(ctx)
	container.RequestID = &requestID

	return withContainer(ctx, container)
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.RequestID != nil {
		return *container.RequestID, true
	}

	return "", false
}

// WithOperationName stores the operation name in the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	container := getContainer(ctx)
	container.OperationName = &name

	return withContainer(ctx, container)
}

// GetOperationName retrieves the operation name from the context.
func GetOperationName(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.OperationName != nil {
		return *container.OperationName, true
	}

	return "", false
}

// AddError records an error on the request for access logging.
func AddError(ctx context.Context, err error) {
	container := getContainer(ctx)
	container.mu.Lock()
	defer container.mu.Unlock()

	container.Errors = append(container.Errors, err)
}

// GetErrors returns the errors recorded on the request.
func GetErrors(ctx context.Context) []error {
	container := getContainer(ctx)
	container.mu.RLock()
	defer container.mu.RUnlock()

	return container.Errors
}
