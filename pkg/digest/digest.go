package digest

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/arxivtools/paperbot/pkg/server/store"
)

// DefaultTitle is the digest heading used when none is configured.
const DefaultTitle = "arXiv Paper Digest"

// Options controls digest generation.
type Options struct {
	// Title overrides the default digest heading
	Title string

	// GeneratedAt is the timestamp printed under the heading. Zero means now.
	GeneratedAt time.Time

	// Exclude lists arXiv ids to leave out, e.g. ids already present in
	// an earlier digest
	Exclude map[string]bool
}

// Generate renders papers as a Markdown digest grouped by publication day,
// newest day first.
func Generate(papers []store.Paper, opts Options) string {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	included := make([]store.Paper, 0, len(papers))
	for _, paper := range papers {
		if opts.Exclude[paper.ArxivID] {
			continue
		}
		included = append(included, paper)
	}
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Published.After(included[j].Published)
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated %s. %d paper(s).\n",
		generatedAt.Format("2006-01-02 15:04 MST"), len(included)))

	currentDay := ""
	for _, paper := range included {
		day := paper.Published.Format("2006-01-02")
		if day != currentDay {
			sb.WriteString(fmt.Sprintf("\n## %s\n\n", day))
			currentDay = day
		}

		sb.WriteString(fmt.Sprintf("- [%s](%s)", paper.Title, paper.ArxivURL))
		if paper.PDFURL != "" {
			sb.WriteString(fmt.Sprintf(" ([pdf](%s))", paper.PDFURL))
		}
		if paper.Authors != "" {
			sb.WriteString(fmt.Sprintf(" by %s", paper.Authors))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Render converts a Markdown digest to HTML.
func Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
