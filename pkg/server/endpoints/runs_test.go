package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxivtools/paperbot/pkg/server/store"
)

func sampleRuns() []store.FetchRun {
	finished := time.Date(2024, 8, 2, 10, 0, 30, 0, time.UTC)
	return []store.FetchRun{
		{
			ID:         2,
			Keywords:   "RAG, world models",
			Trigger:    "api",
			Found:      10,
			Saved:      3,
			Skipped:    7,
			Status:     "completed",
			StartedAt:  time.Date(2024, 8, 2, 10, 0, 0, 0, time.UTC),
			FinishedAt: &finished,
		},
		{
			ID:        1,
			Keywords:  "RAG",
			Trigger:   "schedule",
			Status:    "failed",
			Error:     "arxiv search failed: context deadline exceeded",
			StartedAt: time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestRunsEndpoint(t *testing.T) {
	t.Run("lists recent runs", func(t *testing.T) {
		runs := NewMockRunsStore()
		runs.On("ListRuns", DefaultRunLimit).Return(sampleRuns(), nil)

		s := NewMockTestServer(NewMockPapersStore(), runs, NewMockHealthStore())
		RegisterRunEndpoints(s)

		req := httptest.NewRequest("GET", "/runs", nil)
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []RunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response, 2)

		assert.Equal(t, uint(2), response[0].ID)
		assert.Equal(t, "api", response[0].Trigger)
		assert.Equal(t, 7, response[0].Skipped)
		assert.Equal(t, "2024-08-02T10:00:30Z", response[0].FinishedAt)

		assert.Equal(t, "failed", response[1].Status)
		assert.Contains(t, response[1].Error, "arxiv search failed")
		assert.Empty(t, response[1].FinishedAt)

		runs.AssertExpectations(t)
	})

	t.Run("honors the limit parameter", func(t *testing.T) {
		runs := NewMockRunsStore()
		runs.On("ListRuns", 1).Return(sampleRuns()[:1], nil)

		s := NewMockTestServer(NewMockPapersStore(), runs, NewMockHealthStore())
		RegisterRunEndpoints(s)

		req := httptest.NewRequest("GET", "/runs?limit=1", nil)
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []RunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response, 1)

		runs.AssertExpectations(t)
	})
}
