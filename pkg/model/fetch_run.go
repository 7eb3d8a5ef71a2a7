package model

import "time"

// Fetch run statuses recorded in the fetch_runs table.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// FetchRun records one pass of the bot over the arXiv API
type FetchRun struct {
	ID         uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Keywords   string     `gorm:"column:keywords"`
	Trigger    string     `gorm:"column:trigger"`
	Found      int        `gorm:"column:found"`
	Saved      int        `gorm:"column:saved"`
	Skipped    int        `gorm:"column:skipped"`
	Status     string     `gorm:"column:status;not null"`
	Error      string     `gorm:"column:error"`
	StartedAt  time.Time  `gorm:"column:started_at;autoCreateTime"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

func (FetchRun) TableName() string {
	return "fetch_runs"
}

// Duration returns how long the run took, or zero if it hasn't finished.
func (r *FetchRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
