package pageserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const unmatchedRoute = "unmatched"

// metric records the page routes only, /healthz and /metrics stay outside the group.
func (h *Handler) metric(next http.Handler) http.Handler {
	var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = unmatchedRoute
		}

		code := strconv.Itoa(ww.Status())

		h.metrics.duration.WithLabelValues(code, r.Method, pattern).Observe(time.Since(started).Seconds())
		h.metrics.requests.WithLabelValues(code, r.Method, pattern).Inc()

		if ww.Status() >= http.StatusInternalServerError {
			h.metrics.failedPages.WithLabelValues(pattern).Inc()
		}
	}

	return fn
}
