package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// corsOptions allows every origin, method and header, with credentials.
// The analysis headers are exposed so browser clients can read them.
var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	},
	AllowedHeaders:   []string{"*"},
	ExposedHeaders:   []string{"X-Analysis-ID", "X-Cache"},
	AllowCredentials: true,
	MaxAge:           600,
}

// requestLogger logs one line per request at info level, or warn for 5xx.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				kv := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				}
				if status >= 500 {
					logger.Warn("request", kv...)
				} else {
					logger.Info("request", kv...)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
