package httpapi

import (
	"net/http"

	"github.com/riskibarqy/creator-hub/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the router.
type RouterConfig struct {
	CORSAllowedOrigins []string
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
	Observer       RequestObserver
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerFallbackRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, cfg.Observer, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, recordRoute(mux)))))
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
