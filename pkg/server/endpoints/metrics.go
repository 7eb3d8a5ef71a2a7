package endpoints

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arxivtools/paperbot/pkg/server"
)

// RegisterMetricsEndpoints exposes the Prometheus metrics endpoint
func RegisterMetricsEndpoints(s *server.Server) {
	// GET /metrics - Prometheus metrics (no auth required)
	s.Router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
