package gorm

import (
	"time"

	"github.com/arxivtools/paperbot/pkg/model"
	"github.com/arxivtools/paperbot/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure RunsStore implements store.RunsStore
var _ store.RunsStore = (*RunsStore)(nil)

// RunsStore implements store.RunsStore using GORM
type RunsStore struct {
	db *gorm.DB
}

// NewRunsStore creates a new RunsStore
func NewRunsStore(db *gorm.DB) *RunsStore {
	return &RunsStore{db: db}
}

// StartRun records the beginning of a fetch pass.
func (s *RunsStore) StartRun(keywords, trigger string) (*store.FetchRun, error) {
	row := model.FetchRun{
		Keywords: keywords,
		Trigger:  trigger,
		Status:   model.RunStatusRunning,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}

	run := toStoreRun(row)
	return &run, nil
}

// FinishRun closes a run with its counts and final status.
func (s *RunsStore) FinishRun(id uint, found, saved, skipped int, runErr error) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"found":       found,
		"saved":       saved,
		"skipped":     skipped,
		"status":      model.RunStatusCompleted,
		"finished_at": &now,
	}
	if runErr != nil {
		updates["status"] = model.RunStatusFailed
		updates["error"] = runErr.Error()
	}

	return s.db.Model(&model.FetchRun{}).Where("id = ?", id).Updates(updates).Error
}

// ListRuns returns recent runs, newest first.
func (s *RunsStore) ListRuns(limit int) ([]store.FetchRun, error) {
	var rows []model.FetchRun

	query := s.db.Order("started_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	runs := make([]store.FetchRun, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, toStoreRun(row))
	}
	return runs, nil
}

// LastRun returns the most recent run.
func (s *RunsStore) LastRun() (*store.FetchRun, error) {
	var row model.FetchRun

	tx := s.db.Order("started_at desc").First(&row)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrRunNotFound
		}
		return nil, tx.Error
	}

	run := toStoreRun(row)
	return &run, nil
}

func toStoreRun(row model.FetchRun) store.FetchRun {
	return store.FetchRun{
		ID:         row.ID,
		Keywords:   row.Keywords,
		Trigger:    row.Trigger,
		Found:      row.Found,
		Saved:      row.Saved,
		Skipped:    row.Skipped,
		Status:     row.Status,
		Error:      row.Error,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
	}
}
