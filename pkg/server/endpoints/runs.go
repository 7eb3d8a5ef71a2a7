package endpoints

import (
	"net/http"
	"time"

	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

// RunResponse represents a fetch run in the API response
type RunResponse struct {
	ID         uint   `json:"id"`
	Keywords   string `json:"keywords"`
	Trigger    string `json:"trigger"`
	Found      int    `json:"found"`
	Saved      int    `json:"saved"`
	Skipped    int    `json:"skipped"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// DefaultRunLimit caps run listings when no limit is given
const DefaultRunLimit = 20

// RegisterRunEndpoints registers the fetch run history endpoint
func RegisterRunEndpoints(s *server.Server) {
	runsStore := s.RunsStore

	// GET /runs - List recent fetch runs, newest first
	s.Router.HandleFunc("/runs", handleListRuns(runsStore)).Methods("GET")
}

func handleListRuns(runsStore store.RunsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := parseLimitOffset(r, DefaultRunLimit)

		runs, err := runsStore.ListRuns(limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list runs")
			return
		}

		response := make([]RunResponse, 0, len(runs))
		for _, run := range runs {
			response = append(response, newRunResponse(run))
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}

func newRunResponse(run store.FetchRun) RunResponse {
	response := RunResponse{
		ID:        run.ID,
		Keywords:  run.Keywords,
		Trigger:   run.Trigger,
		Found:     run.Found,
		Saved:     run.Saved,
		Skipped:   run.Skipped,
		Status:    run.Status,
		Error:     run.Error,
		StartedAt: run.StartedAt.UTC().Format(time.RFC3339),
	}
	if run.FinishedAt != nil {
		response.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	return response
}
