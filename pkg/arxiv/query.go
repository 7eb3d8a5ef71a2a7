package arxiv

import (
	"fmt"
	"strings"
)

// Query describes one request against the arXiv API.
type Query struct {
	// SearchQuery is the raw search_query expression, e.g. "all:RAG OR all:agents"
	SearchQuery string

	// Start is the zero-based offset into the result set
	Start int

	// MaxResults caps the number of entries returned (API default is 10)
	MaxResults int

	SortBy    SortBy
	SortOrder SortOrder
}

// BuildQuery turns a keyword list into a search_query expression.
// Each keyword matches against all fields and keywords are OR-ed
// together. Multi-word keywords are quoted so the API treats them as
// phrases:
//
//	BuildQuery([]string{"RAG", "world models"}) == `all:RAG OR all:"world models"`
func BuildQuery(keywords []string) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.ContainsAny(kw, " \t") {
			terms = append(terms, fmt.Sprintf("all:%q", kw))
		} else {
			terms = append(terms, "all:"+kw)
		}
	}
	return strings.Join(terms, " OR ")
}

// ShortID extracts the short arXiv identifier from an abs page URL.
// For "http://arxiv.org/abs/2408.01234v1" it returns "2408.01234v1".
// Inputs without slashes are returned unchanged.
func ShortID(entryID string) string {
	if idx := strings.LastIndex(entryID, "/"); idx >= 0 {
		return entryID[idx+1:]
	}
	return entryID
}
