package endpoints

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

const indexHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">

    <link rel="stylesheet" href="/css/main.css">
    <title>arXiv Paper Bot</title>
  </head>
  <body>

    <header>
      <h1>arXiv Paper Bot</h1>
      <p>{{.Count}} papers tracked. Last fetch: {{.LastRun}}.</p>
    </header>

    <main>
      <section class="controls">
        <form method="POST" action="/keywords">
          <label for="keywords">Keywords (comma separated)</label>
          <input type="text" id="keywords" name="keywords" value="{{.Keywords}}" size="60">
          <button type="submit">Save keywords</button>
        </form>
        <form method="POST" action="/fetch">
          <button type="submit">Fetch now</button>
        </form>
      </section>

      <section class="papers">
        {{range .Papers}}
        <article class="paper">
          <h2><a href="{{.ArxivURL}}">{{.Title}}</a></h2>
          <p class="authors">{{.Authors}}</p>
          <p class="meta">{{.Published}} &middot; <a href="{{.PDFURL}}">PDF</a></p>
        </article>
        {{else}}
        <p>No papers stored yet. Save some keywords and fetch.</p>
        {{end}}
      </section>
    </main>

  </body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexPaper struct {
	Title     string
	Authors   string
	Published string
	ArxivURL  string
	PDFURL    string
}

type indexData struct {
	Keywords string
	Papers   []indexPaper
	Count    int64
	LastRun  string
}

// RegisterIndexEndpoints registers the HTML dashboard
func RegisterIndexEndpoints(s *server.Server) {
	papersStore := s.PapersStore
	runsStore := s.RunsStore

	// GET / - Dashboard with recent papers and the keyword form
	s.Router.HandleFunc("/", handleIndex(papersStore, runsStore)).Methods("GET")
}

func handleIndex(papersStore store.PapersStore, runsStore store.RunsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		papers, err := papersStore.ListPapers("", DefaultPaperLimit, 0)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list papers")
			return
		}
		count, _ := papersStore.CountPapers("")

		data := indexData{
			Keywords: strings.Join(config.Get().Keywords, ", "),
			Count:    count,
			LastRun:  "never",
		}
		for _, paper := range papers {
			data.Papers = append(data.Papers, indexPaper{
				Title:     paper.Title,
				Authors:   paper.Authors,
				Published: paper.Published.UTC().Format("2006-01-02"),
				ArxivURL:  paper.ArxivURL,
				PDFURL:    paper.PDFURL,
			})
		}
		if lastRun, err := runsStore.LastRun(); err == nil {
			data.LastRun = lastRun.StartedAt.UTC().Format("2006-01-02 15:04") + " UTC (" + lastRun.Status + ")"
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTemplate.Execute(w, data)
	}
}
