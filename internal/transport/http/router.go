package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"northpole/internal/platform/health"
	"northpole/internal/platform/metrics"
	"northpole/internal/platform/middleware"
)

// NewRouter wires all public endpoints with middleware.
// Uses chi router for better middleware support and routing.
func NewRouter(h *Handler, healthHandler *health.Handler, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	if m != nil {
		r.Use(endpointLatency(m))
	}

	r.Get("/api/hello", h.handleHello)

	r.Post("/api/wish", h.handleWishRegister)
	r.Get("/api/wish", h.handleWishList)

	r.Post("/api/people", h.handlePeopleRegister)
	r.Get("/api/people", h.handlePeopleList)
	r.Put("/api/people", h.handlePeopleUpdate)

	r.Put("/api/wishreplace", h.handleWishReplace)
	r.Post("/api/wishfulfill", h.handleWishFulfill)

	if healthHandler != nil {
		healthHandler.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	// Anything else, including wrong methods on known paths, is 405.
	r.NotFound(methodNotAllowed)
	r.MethodNotAllowed(methodNotAllowed)

	return r
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleHello handles GET /api/hello.
func (h *Handler) handleHello(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello, World!"))
}

// endpointLatency records per-route request latency using the chi route
// pattern as the label to keep cardinality bounded.
func endpointLatency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.EndpointLatency.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		})
	}
}
