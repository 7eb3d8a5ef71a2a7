package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

// PaperResponse represents a stored paper in the API response
type PaperResponse struct {
	ArxivID   string `json:"arxiv_id"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
	ArxivURL  string `json:"arxiv_url"`
	PDFURL    string `json:"pdf_url"`
	CreatedAt string `json:"created_at"`
}

// DefaultPaperLimit caps paper listings when no limit is given
const DefaultPaperLimit = 50

// RegisterPaperEndpoints registers the paper listing endpoints
func RegisterPaperEndpoints(s *server.Server) {
	papersStore := s.PapersStore

	// GET /papers - List stored papers, newest first
	s.Router.HandleFunc("/papers", handleListPapers(papersStore)).Methods("GET")

	// GET /papers/{arxiv_id} - Show a single stored paper
	s.Router.HandleFunc("/papers/{arxiv_id}", handleShowPaper(papersStore)).Methods("GET")
}

func handleListPapers(papersStore store.PapersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		limit, offset := parseLimitOffset(r, DefaultPaperLimit)

		// Check if count only is requested
		if r.URL.Query().Get("count") == "true" {
			count, err := papersStore.CountPapers(search)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "failed to count papers")
				return
			}
			respondWithJSON(w, http.StatusOK, map[string]int64{"count": count})
			return
		}

		papers, err := papersStore.ListPapers(search, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list papers")
			return
		}

		response := make([]PaperResponse, 0, len(papers))
		for _, paper := range papers {
			response = append(response, newPaperResponse(paper))
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleShowPaper(papersStore store.PapersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		arxivID := mux.Vars(r)["arxiv_id"]

		paper, err := papersStore.FetchPaper(arxivID)
		if err != nil {
			if errors.Is(err, store.ErrPaperNotFound) {
				respondWithError(w, http.StatusNotFound, "Paper not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch paper")
			return
		}

		respondWithJSON(w, http.StatusOK, newPaperResponse(*paper))
	}
}

func newPaperResponse(paper store.Paper) PaperResponse {
	return PaperResponse{
		ArxivID:   paper.ArxivID,
		Title:     paper.Title,
		Authors:   paper.Authors,
		Summary:   paper.Summary,
		Published: paper.Published.UTC().Format(time.RFC3339),
		ArxivURL:  paper.ArxivURL,
		PDFURL:    paper.PDFURL,
		CreatedAt: paper.CreatedAt.UTC().Format(time.RFC3339),
	}
}
