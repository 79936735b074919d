package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("lineup-studio/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// Probes hit these handlers every few seconds.
var untracedHandlers = map[string]struct{}{
	"httpapi.Handler.Healthz": {},
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	if !strings.HasPrefix(name, "httpapi.Handler.") {
		return false
	}
	_, skip := untracedHandlers[name]
	return !skip
}

func leagueSlugAttr(r *http.Request) attribute.KeyValue {
	return attribute.String("league.slug", strings.TrimSpace(r.PathValue("slug")))
}
