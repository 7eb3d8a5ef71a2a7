package digest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/arxivtools/paperbot/pkg/arxiv"
)

// ExtractArxivIDs returns the arXiv ids referenced by links in a Markdown
// document, in order of first appearance. Abs and pdf links to the same
// paper count once.
func ExtractArxivIDs(source []byte) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var ids []string
	seen := make(map[string]bool)

	record := func(destination string) {
		id, ok := idFromURL(destination)
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Link:
			record(string(node.Destination))
		case *ast.AutoLink:
			record(string(node.URL(source)))
		}

		return ast.WalkContinue, nil
	})

	return ids
}

func idFromURL(url string) (string, bool) {
	if !strings.Contains(url, "arxiv.org/abs/") && !strings.Contains(url, "arxiv.org/pdf/") {
		return "", false
	}

	id := strings.TrimSuffix(arxiv.ShortID(url), ".pdf")
	if id == "" {
		return "", false
	}
	return id, true
}
