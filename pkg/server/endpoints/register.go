package endpoints

import (
	"github.com/arxivtools/paperbot/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(s *server.Server) {
	RegisterPaperEndpoints(s)
	RegisterKeywordEndpoints(s)
	RegisterFetchEndpoints(s)
	RegisterRunEndpoints(s)
	RegisterDigestEndpoints(s)
	RegisterStatusEndpoints(s)
	RegisterMetricsEndpoints(s)
	RegisterIndexEndpoints(s)

	// Static files
	RegisterStaticFiles(s)
}
