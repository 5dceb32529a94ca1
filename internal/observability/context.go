package observability

import "context"

type contextKey string

const searchIDKey contextKey = "search_id"

// ContextWithSearchID returns a context carrying the search invocation ID.
func ContextWithSearchID(ctx context.Context, searchID string) context.Context {
	return context.WithValue(ctx, searchIDKey, searchID)
}

// SearchIDFromContext extracts the search invocation ID from the context,
// returning an empty string when none is set.
func SearchIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(searchIDKey).(string); ok {
		return v
	}
	return ""
}
