package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusnet-service/internal/domain"
	"campusnet-service/internal/metrics"
	"campusnet-service/internal/stats"
	"campusnet-service/internal/timeline"
)

// Server exposes the HTTP transport for the stats service.
type Server struct {
	router chi.Router
}

// NewServer constructs a chi based HTTP server that forwards requests to the
// stats service. The timeline store and the count source may be nil in tests
// that only exercise the aggregate routes.
func NewServer(service *stats.Service, tl *timeline.Store, counter domain.MeasurementReader) *Server {
	router := chi.NewRouter()
	handler := &handler{service: service, timeline: tl, counter: counter}
	registerRoutes(router, handler)

	return &Server{router: router}
}

// Router returns the configured chi router for reuse in tests or external HTTP servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// ServeHTTP allows Server to satisfy the http.Handler interface directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func registerRoutes(router chi.Router, h *handler) {
	router.Use(countRequests)

	router.Get("/healthz", h.handleHealth)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/overview", h.handleOverview)
		r.Get("/carriers/{carrier}", h.handleCarrierSummary)
		r.Get("/locations", h.handleLocations)
		r.Get("/locations/{name}", h.handleLocationReport)
		r.Get("/best", h.handleBestCarriers)
		r.Get("/reliability", h.handleReliability)
		r.Get("/timeofday", h.handleTimeOfDay)
		r.Get("/costs", h.handleCosts)
		r.Get("/ratings", h.handleRatings)
		r.Get("/map", h.handleMapPoints)
		r.Get("/series", h.handleSeries)
	})
}

// countRequests labels the request counter with the matched chi route
// pattern so arbitrary request paths cannot inflate the label set.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route).Inc()
	})
}
