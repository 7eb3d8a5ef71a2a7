package arxiv

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Entry is one paper returned by the arXiv API.
type Entry struct {
	// ID is the abs page URL, e.g. "http://arxiv.org/abs/2408.01234v1"
	ID         string
	Title      string
	Summary    string
	Published  time.Time
	Updated    time.Time
	Authors    []string
	PDFURL     string
	Categories []string

	// Fields from the arxiv namespace extensions, empty when absent.
	PrimaryCategory string
	Comment         string
	JournalRef      string
	DOI             string
}

// ShortID returns the short identifier derived from the entry ID URL.
func (e Entry) ShortID() string {
	return ShortID(e.ID)
}

// Result is one page of search results.
type Result struct {
	// TotalResults is the full match count reported by the API,
	// independent of paging
	TotalResults int
	Entries      []Entry
}

// Atom wire types. The arXiv API serves an Atom 1.0 feed with
// opensearch extensions; encoding/xml matches on local names so the
// namespaces don't need spelling out.
type atomFeed struct {
	XMLName      xml.Name    `xml:"feed"`
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Links           []atomLink     `xml:"link"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"primary_category"`
	Comment         string         `xml:"comment"`
	JournalRef      string         `xml:"journal_ref"`
	DOI             string         `xml:"doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// parseFeed decodes an Atom response body into a Result.
func parseFeed(data []byte) (*Result, error) {
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse atom feed: %w", err)
	}

	result := &Result{
		TotalResults: feed.TotalResults,
		Entries:      make([]Entry, 0, len(feed.Entries)),
	}

	for _, raw := range feed.Entries {
		entry := Entry{
			ID:              strings.TrimSpace(raw.ID),
			Title:           collapseWhitespace(raw.Title),
			Summary:         strings.TrimSpace(raw.Summary),
			PrimaryCategory: raw.PrimaryCategory.Term,
			Comment:         collapseWhitespace(raw.Comment),
			JournalRef:      collapseWhitespace(raw.JournalRef),
			DOI:             strings.TrimSpace(raw.DOI),
		}

		if raw.Published != "" {
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw.Published))
			if err != nil {
				return nil, fmt.Errorf("entry %s has invalid published date: %w", entry.ID, err)
			}
			entry.Published = t
		}
		if raw.Updated != "" {
			if t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw.Updated)); err == nil {
				entry.Updated = t
			}
		}

		for _, a := range raw.Authors {
			if name := collapseWhitespace(a.Name); name != "" {
				entry.Authors = append(entry.Authors, name)
			}
		}

		for _, l := range raw.Links {
			if l.Title == "pdf" || l.Type == "application/pdf" {
				entry.PDFURL = l.Href
				break
			}
		}

		for _, c := range raw.Categories {
			if c.Term != "" {
				entry.Categories = append(entry.Categories, c.Term)
			}
		}

		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// collapseWhitespace folds runs of whitespace (including the feed's
// hard-wrapped newlines) into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
