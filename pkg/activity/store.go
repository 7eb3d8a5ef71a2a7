package activity

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"
)

// Store persists activity events to the messages table. Methods on a nil
// Store are no-ops, so callers log without checking whether persistence
// is configured.
type Store struct {
	db *sql.DB
}

// NewStore connects to the database named by ACTIVITY_DATABASE_URL.
// Returns nil when the variable is unset, which disables persistence.
func NewStore() (*Store, error) {
	dbURL := os.Getenv("ACTIVITY_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection. Tests pair it with sqlmock.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes one row for the event. The structured data lands in the
// details column keyed by SDID, the same grouping as the syslog line.
func (s *Store) Save(event Event) error {
	if s == nil || s.db == nil {
		return nil
	}

	details, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO messages (occurred_at, severity, kind, details, message)
		VALUES ($1, $2, $3, $4, $5)
	`,
		time.Now().UTC(),
		int(event.Severity()),
		event.MessageID(),
		details,
		event.Message(),
	)
	return err
}
