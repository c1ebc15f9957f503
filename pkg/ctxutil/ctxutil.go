// Package ctxutil carries request-scoped identifiers through the context:
// the request id set by the middleware and the operator name supplied by
// the front end with each call.
package ctxutil

import "context"

type ctxKey string

const (
	operatorKey  ctxKey = "operator"
	requestIDKey ctxKey = "request_id"
)

// WithOperator stores the operator name in the context. The name is kept
// exactly as typed; blank values are stored as-is and resolved to the
// sentinel only when an audit entry is written.
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorKey, name)
}

// OperatorFromCtx extracts the operator name from the context.
// Returns an empty string if absent.
func OperatorFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(operatorKey).(string)
	return name
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
