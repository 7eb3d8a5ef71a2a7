package endpoints

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/arxivtools/paperbot/pkg/server"
)

//go:embed static/css
var staticFiles embed.FS

// RegisterStaticFiles serves the dashboard CSS out of the embedded copy,
// so the binary needs no files on disk next to it.
func RegisterStaticFiles(s *server.Server) {
	cssFS, _ := fs.Sub(staticFiles, "static/css")
	s.Router.PathPrefix("/css/").Handler(
		http.StripPrefix("/css/", http.FileServer(http.FS(cssFS))),
	)

	// No favicon shipped, and without this route the request would fall
	// through to the dashboard handler
	s.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
