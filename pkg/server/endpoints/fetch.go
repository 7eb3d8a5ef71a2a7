package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/server"
)

// RegisterFetchEndpoints registers the manual fetch trigger endpoint.
// Triggering requires a bearer token when PAPERBOT_API_SECRET is set.
func RegisterFetchEndpoints(s *server.Server) {
	fetchRouter := s.Router.PathPrefix("/fetch").Subrouter()
	fetchRouter.Use(s.TokenAuth.Middleware)

	// POST /fetch - Start a fetch run in the background
	fetchRouter.HandleFunc("", handleFetch(s.Bot)).Methods("POST")
}

func handleFetch(b *bot.Bot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The run outlives the request, so it must not inherit the
		// request context.
		err := b.Trigger(context.Background(), bot.TriggerAPI)
		if err != nil {
			if errors.Is(err, bot.ErrRunInProgress) {
				respondWithError(w, http.StatusConflict, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// The dashboard form expects to land back on the index
		if isFormRequest(r) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}
