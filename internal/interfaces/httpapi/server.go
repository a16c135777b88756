package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchday-intel/internal/platform/id"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
)

// RouterOptions toggles the optional system routes.
type RouterOptions struct {
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	// Metrics serves GET /metrics when non-nil.
	Metrics    http.Handler
	RequestIDs id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts)
	registerLeagueRoutes(mux, handler)
	registerResolutionRoutes(mux, handler)
	registerRosterRoutes(mux, handler)

	return RequestTracing(
		RequestID(opts.RequestIDs,
			RequestLogging(logger,
				CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "http_path", r.URL.Path, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
