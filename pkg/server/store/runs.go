package store

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when no fetch run exists
var ErrRunNotFound = errors.New("fetch run not found")

// FetchRun represents one pass of the fetcher
type FetchRun struct {
	ID         uint
	Keywords   string
	Trigger    string
	Found      int
	Saved      int
	Skipped    int
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// RunsStore abstracts fetch run bookkeeping
type RunsStore interface {
	// StartRun records the beginning of a fetch pass and returns it
	// with its ID and start time filled in.
	StartRun(keywords, trigger string) (*FetchRun, error)

	// FinishRun closes a run with its counts. A non-nil runErr marks
	// the run failed and stores the error text.
	FinishRun(id uint, found, saved, skipped int, runErr error) error

	// ListRuns returns recent runs, newest first. A limit of 0
	// returns everything.
	ListRuns(limit int) ([]FetchRun, error)

	// LastRun returns the most recent run.
	// Returns ErrRunNotFound if no runs have been recorded.
	LastRun() (*FetchRun, error)
}
