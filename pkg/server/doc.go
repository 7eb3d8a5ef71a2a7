// Package server provides the HTTP server for the paperbot API.
//
// This package implements the core HTTP server that serves the web
// dashboard and the REST API. It uses gorilla/mux for routing and
// gorilla/handlers for access logging.
//
// # Server Setup
//
//	srv := server.NewServer(db, b, "", "8000")
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - DB: Database connection
//   - PapersStore, RunsStore, HealthStore: persistence layers
//   - Bot: the fetch pipeline, used to trigger runs over the API
//   - TokenAuth: bearer-token middleware guarding mutating endpoints
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the dashboard and API endpoints including:
//
//   - / - HTML dashboard with recent papers and the keyword form
//   - /papers - stored papers with search and pagination
//   - /papers/{arxiv_id} - a single stored paper
//   - /keywords - read and replace the tracked keywords
//   - /fetch - trigger a fetch run in the background
//   - /runs - fetch run history
//   - /digest - Markdown digest of recent papers, rendered as HTML
//   - /status - version and database health
//   - /metrics - Prometheus metrics
package server
