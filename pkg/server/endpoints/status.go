package endpoints

import (
	"fmt"
	"net/http"
	"os"

	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Version  string       `json:"version"`
	Database string       `json:"database"`
	LastRun  *RunResponse `json:"last_run,omitempty"`
}

// StatusErrorResponse represents a failed health check
type StatusErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// RegisterStatusEndpoints registers the health and version endpoint
func RegisterStatusEndpoints(s *server.Server) {
	healthStore := s.HealthStore
	runsStore := s.RunsStore

	// GET /status - Version and database health (no auth required)
	s.Router.HandleFunc("/status", handleStatus(healthStore, runsStore)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore, runsStore store.RunsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("PAPERBOT_VERSION")
		if version == "" {
			version = "0.1.0"
		}

		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusErrorResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}

		response := StatusResponse{
			Version:  version,
			Database: "ok",
		}
		if lastRun, err := runsStore.LastRun(); err == nil {
			runResponse := newRunResponse(*lastRun)
			response.LastRun = &runResponse
		}

		if wantsHTML(r) {
			renderStatusPage(w, response)
			return
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}

func renderStatusPage(w http.ResponseWriter, status StatusResponse) {
	lastRun := "never"
	if status.LastRun != nil {
		lastRun = fmt.Sprintf("%s (%s, saved %d of %d found)",
			status.LastRun.StartedAt, status.LastRun.Status, status.LastRun.Saved, status.LastRun.Found)
	}

	html := `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">

    <link rel="stylesheet" href="/css/main.css">
    <title>paperbot Status</title>
  </head>
  <body>

    <main>
      <h1>Status</h1>
      <p class="status-text">Your paperbot server is running!</p>

      <dl>
        <dt>Version:</dt>
        <dd>` + status.Version + `</dd>
        <dt>Database:</dt>
        <dd>` + status.Database + `</dd>
        <dt>Last fetch run:</dt>
        <dd>` + lastRun + `</dd>
      </dl>

      <p>
        <a href="/">Dashboard</a>
        |
        <a href="/papers">Papers</a>
        |
        <a href="/digest">Digest</a>
        |
        <a href="/runs">Runs</a>
      </p>
    </main>

  </body>
</html>
`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
