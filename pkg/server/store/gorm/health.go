package gorm

import (
	"github.com/arxivtools/paperbot/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore answers the connectivity probe behind the status endpoint
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore returns a HealthStore backed by db
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity verifies the database is reachable and migrated.
// Probing the papers table rather than running SELECT 1 makes /status
// fail on a server that booted without its migrations.
func (s *HealthStore) CheckConnectivity() error {
	return s.db.Exec("SELECT 1 FROM papers LIMIT 1").Error
}
