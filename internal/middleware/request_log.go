package middleware

import (
	"net/http"
	"time"

	"epaw/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog deja una línea por request con el id que asignó chimw.RequestID.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			fields := map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"elapsed_ms": time.Since(start).Milliseconds(),
			}
			if c, ok := GetClaims(r.Context()); ok {
				fields["user_id"] = c.UserID
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				log.Error("request", fields)
			case ww.Status() >= http.StatusBadRequest:
				log.Warn("request", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
