package gorm

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxivtools/paperbot/pkg/model"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

func TestStartRun(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "fetch_runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	runs := NewRunsStore(db)

	run, err := runs.StartRun("RAG, world models", "api")
	require.NoError(t, err)
	assert.Equal(t, uint(3), run.ID)
	assert.Equal(t, "RAG, world models", run.Keywords)
	assert.Equal(t, "api", run.Trigger)
	assert.Equal(t, model.RunStatusRunning, run.Status)
}

func TestFinishRun(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "fetch_runs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runs := NewRunsStore(db)

	require.NoError(t, runs.FinishRun(3, 10, 4, 6, nil))
}

func TestFinishRunFailed(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "fetch_runs" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runs := NewRunsStore(db)

	require.NoError(t, runs.FinishRun(3, 0, 0, 0, errors.New("arxiv search failed")))
}

func TestListRuns(t *testing.T) {
	db, mock := newMockDB(t)

	started := time.Date(2024, 8, 2, 10, 0, 0, 0, time.UTC)
	finished := started.Add(30 * time.Second)
	rows := sqlmock.NewRows(runColumns).
		AddRow(2, "RAG", "api", 10, 3, 7, model.RunStatusCompleted, "", started, finished).
		AddRow(1, "RAG", "schedule", 0, 0, 0, model.RunStatusFailed, "arxiv search failed", started.Add(-time.Hour), nil)

	mock.ExpectQuery(`SELECT .* FROM "fetch_runs" ORDER BY started_at desc LIMIT`).
		WillReturnRows(rows)

	runs := NewRunsStore(db)

	got, err := runs.ListRuns(20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "api", got[0].Trigger)
	assert.Equal(t, 7, got[0].Skipped)
	require.NotNil(t, got[0].FinishedAt)
	assert.Nil(t, got[1].FinishedAt)
}

func TestLastRunNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM "fetch_runs" ORDER BY started_at desc`).
		WillReturnRows(sqlmock.NewRows(runColumns))

	runs := NewRunsStore(db)

	_, err := runs.LastRun()
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}
