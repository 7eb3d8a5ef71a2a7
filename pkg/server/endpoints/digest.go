package endpoints

import (
	"net/http"

	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/digest"
	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

// RegisterDigestEndpoints registers the Markdown digest endpoints
func RegisterDigestEndpoints(s *server.Server) {
	papersStore := s.PapersStore

	// GET /digest - Recent papers as a rendered HTML digest
	s.Router.HandleFunc("/digest", handleDigest(papersStore, false)).Methods("GET")

	// GET /digest.md - The raw Markdown source
	s.Router.HandleFunc("/digest.md", handleDigest(papersStore, true)).Methods("GET")
}

func handleDigest(papersStore store.PapersStore, raw bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parseLimitOffset(r, DefaultPaperLimit)

		papers, err := papersStore.ListPapers("", limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list papers")
			return
		}

		md := digest.Generate(papers, digest.Options{Title: config.Get().DigestTitle})

		if raw {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			_, _ = w.Write([]byte(md))
			return
		}

		html, err := digest.Render([]byte(md))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to render digest")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	}
}
