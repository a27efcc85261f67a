package web

import (
	"net/http"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

// responseData records what a handler wrote.
type responseData struct {
	size   int
	status int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// loggingMiddleware logs one line per request in verbose mode.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data := &responseData{}
		lw := &loggingResponseWriter{ResponseWriter: w, responseData: data}

		start := time.Now()
		next.ServeHTTP(lw, req)

		logger.Debug("%s %s -> %d (%d bytes, %s)",
			req.Method, req.RequestURI, data.status, data.size, time.Since(start))
	})
}
