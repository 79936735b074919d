package httpapi

import "context"

type contextKey string

const clientIDContextKey contextKey = "lineup_client_id"

func withClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDContextKey, id)
}

func clientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDContextKey).(string)
	return id, ok && id != ""
}
