package store

import (
	"errors"
	"time"
)

// ErrPaperNotFound is returned when a paper doesn't exist
var ErrPaperNotFound = errors.New("paper not found")

// ErrPaperExists is returned when a paper is already stored
var ErrPaperExists = errors.New("paper already exists")

// Paper represents a stored paper with metadata
type Paper struct {
	ID        uint
	Title     string
	Authors   string
	Summary   string
	Published time.Time
	ArxivURL  string
	PDFURL    string
	ArxivID   string
	CreatedAt time.Time
}

// PapersStore abstracts paper storage operations
type PapersStore interface {
	// SavePaper inserts a paper. Returns ErrPaperExists when a paper
	// with the same arXiv URL or short ID is already stored. On success
	// the paper's ID and CreatedAt are filled in.
	SavePaper(paper *Paper) error

	// ListPapers returns papers ordered by published date, newest
	// first. A non-empty search matches title, authors and summary
	// case-insensitively. A limit of 0 returns everything.
	ListPapers(search string, limit, offset int) ([]Paper, error)

	// FetchPaper retrieves a paper by its short arXiv ID.
	// Returns ErrPaperNotFound if the paper doesn't exist.
	FetchPaper(arxivID string) (*Paper, error)

	// CountPapers returns the number of stored papers matching the
	// search term, or all papers when the search is empty.
	CountPapers(search string) (int64, error)
}
