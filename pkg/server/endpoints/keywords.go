package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arxivtools/paperbot/pkg/activity"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/server"
)

// KeywordsResponse represents the tracked keywords in the API response
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// RegisterKeywordEndpoints registers the keyword read and update endpoints.
// Updates require a bearer token when PAPERBOT_API_SECRET is set.
func RegisterKeywordEndpoints(s *server.Server) {
	// GET /keywords - Read the tracked keywords (no auth required)
	s.Router.HandleFunc("/keywords", handleGetKeywords()).Methods("GET")

	keywordsRouter := s.Router.PathPrefix("/keywords").Subrouter()
	keywordsRouter.Use(s.TokenAuth.Middleware)

	// PUT /keywords - Replace the keywords with a JSON list
	// POST /keywords - Replace the keywords from the dashboard form
	keywordsRouter.HandleFunc("", handleSetKeywords()).Methods("PUT", "POST")
}

func handleGetKeywords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.Get()

		keywords := make([]string, 0, len(cfg.Keywords))
		keywords = append(keywords, cfg.Keywords...)

		respondWithJSON(w, http.StatusOK, KeywordsResponse{Keywords: keywords})
	}
}

func handleSetKeywords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keywords, err := parseKeywordsRequest(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		cfg := config.Get()
		old := append([]string(nil), cfg.Keywords...)

		if err := cfg.SetKeywords(keywords); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save keywords")
			return
		}

		activity.Log(activity.KeywordsEvent{
			Old:      old,
			New:      cfg.Keywords,
			ClientIP: clientIP(r),
			Source:   "api",
		})

		// The dashboard form expects to land back on the index
		if isFormRequest(r) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		respondWithJSON(w, http.StatusOK, KeywordsResponse{Keywords: cfg.Keywords})
	}
}

// parseKeywordsRequest accepts either a JSON body with a keywords list or
// the dashboard form's single comma separated "keywords" field.
func parseKeywordsRequest(r *http.Request) ([]string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body KeywordsResponse
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, errors.New("invalid JSON body")
		}
		return body.Keywords, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.New("invalid form body")
	}
	return strings.Split(r.PostFormValue("keywords"), ","), nil
}

func isFormRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
