package digest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxivtools/paperbot/pkg/digest"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

func samplePapers() []store.Paper {
	return []store.Paper{
		{
			Title:     "Retrieval-Augmented Generation for Large Language Models",
			Authors:   "Yunfan Gao, Yun Xiong",
			Published: time.Date(2024, 8, 1, 9, 30, 0, 0, time.UTC),
			ArxivURL:  "http://arxiv.org/abs/2408.01234v1",
			PDFURL:    "http://arxiv.org/pdf/2408.01234v1",
			ArxivID:   "2408.01234v1",
		},
		{
			Title:     "Planning with Language Agents",
			Authors:   "Ada Lovelace",
			Published: time.Date(2024, 8, 3, 14, 0, 0, 0, time.UTC),
			ArxivURL:  "http://arxiv.org/abs/2408.05678v2",
			PDFURL:    "http://arxiv.org/pdf/2408.05678v2",
			ArxivID:   "2408.05678v2",
		},
	}
}

func TestGenerate(t *testing.T) {
	md := digest.Generate(samplePapers(), digest.Options{
		GeneratedAt: time.Date(2024, 8, 5, 12, 0, 0, 0, time.UTC),
	})

	assert.True(t, strings.HasPrefix(md, "# arXiv Paper Digest\n"))
	assert.Contains(t, md, "Generated 2024-08-05 12:00 UTC. 2 paper(s).")
	assert.Contains(t, md, "## 2024-08-03")
	assert.Contains(t, md, "## 2024-08-01")
	assert.Contains(t, md, "[Planning with Language Agents](http://arxiv.org/abs/2408.05678v2)")
	assert.Contains(t, md, "([pdf](http://arxiv.org/pdf/2408.01234v1))")
	assert.Contains(t, md, "by Yunfan Gao, Yun Xiong")

	// Newest day comes first
	assert.Less(t, strings.Index(md, "## 2024-08-03"), strings.Index(md, "## 2024-08-01"))
}

func TestGenerateCustomTitle(t *testing.T) {
	md := digest.Generate(nil, digest.Options{Title: "Weekly Reading"})

	assert.True(t, strings.HasPrefix(md, "# Weekly Reading\n"))
	assert.Contains(t, md, "0 paper(s).")
	assert.NotContains(t, md, "## ")
}

func TestGenerateExclude(t *testing.T) {
	md := digest.Generate(samplePapers(), digest.Options{
		Exclude: map[string]bool{"2408.01234v1": true},
	})

	assert.Contains(t, md, "1 paper(s).")
	assert.NotContains(t, md, "2408.01234v1")
	assert.Contains(t, md, "2408.05678v2")
}

func TestExtractArxivIDs(t *testing.T) {
	md := digest.Generate(samplePapers(), digest.Options{})

	ids := digest.ExtractArxivIDs([]byte(md))
	assert.Equal(t, []string{"2408.05678v2", "2408.01234v1"}, ids)
}

func TestExtractArxivIDsIgnoresOtherLinks(t *testing.T) {
	md := `# Notes

- [Some repo](https://github.com/example/repo)
- [A paper](http://arxiv.org/abs/2301.00001v1) ([pdf](http://arxiv.org/pdf/2301.00001v1.pdf))
- <http://arxiv.org/abs/2301.00002v1>
`

	ids := digest.ExtractArxivIDs([]byte(md))
	assert.Equal(t, []string{"2301.00001v1", "2301.00002v1"}, ids)
}

func TestRender(t *testing.T) {
	md := digest.Generate(samplePapers(), digest.Options{})

	html, err := digest.Render([]byte(md))
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1>arXiv Paper Digest</h1>")
	assert.Contains(t, string(html), `<a href="http://arxiv.org/abs/2408.01234v1">`)
}
