package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs each completed request with its request id, route,
// status, latency and response size. The request-scoped logger is stored in
// the request context for handlers. Place it after middleware.RequestID.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With(
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			r = r.WithContext(WithLogger(r.Context(), reqLogger))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("route", routePattern(r)),
					zap.Int("status", status),
					zap.Duration("latency", time.Since(start)),
					zap.Int("bytes", ww.BytesWritten()),
				}
				switch {
				case status >= http.StatusInternalServerError:
					reqLogger.Error("request completed", fields...)
				case status >= http.StatusBadRequest:
					reqLogger.Warn("request completed", fields...)
				default:
					reqLogger.Info("request completed", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
