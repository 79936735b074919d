package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
)

type routerOptions struct {
	traceBodyLimit int
}

type RouterOption func(*routerOptions)

// WithTracedRequestBodies records up to limit bytes of JSON request bodies on spans.
func WithTracedRequestBodies(limit int) RouterOption {
	return func(o *routerOptions) {
		o.traceBodyLimit = limit
	}
}

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	cookieOpts cookie.Options,
	opts ...RouterOption,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerLineupRoutes(mux, handler, cookieOpts)
	registerLeagueRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))), o.traceBodyLimit)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
