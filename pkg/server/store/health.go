package store

// HealthStore provides health check operations for the status endpoint
type HealthStore interface {
	// CheckConnectivity verifies the database is reachable and migrated
	CheckConnectivity() error
}
