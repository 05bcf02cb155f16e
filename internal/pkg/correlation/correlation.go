// Package correlation carries the bank-correlation-id header through request
// contexts so downstream calls and logs can be tied back to the edge request.
package correlation

import "context"

// Header is the HTTP header used to propagate a correlation identifier
// across service boundaries.
const Header = "bank-correlation-id"

type ctxKey struct{}

// WithID returns a context carrying the given correlation identifier.
func WithID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the correlation identifier stored in ctx, or "" when absent.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
