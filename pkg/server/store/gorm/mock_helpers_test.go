package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Column lists for sqlmock result rows, in the order GORM selects them.
var (
	paperColumns = []string{"id", "title", "authors", "summary", "published", "arxiv_url", "pdf_url", "arxiv_id", "created_at"}
	runColumns   = []string{"id", "keywords", "trigger", "found", "saved", "skipped", "status", "error", "started_at", "finished_at"}
)

// newMockDB opens a GORM handle backed by sqlmock. Any expectations left
// unmet when the test ends fail it.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 conn,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})

	return gormDB, mock
}
