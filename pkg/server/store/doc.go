// Package store defines the storage interfaces the paperbot server and
// fetch loop are written against.
//
// Endpoints and the bot depend on these interfaces rather than on a
// concrete database, so tests can stand in fakes or sqlmock without a
// running PostgreSQL. The GORM-backed implementations live in the gorm
// subpackage.
//
// # Available Stores
//
//   - PapersStore: paper rows (save, list, fetch, count)
//   - RunsStore: fetch run bookkeeping (start, finish, list)
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	papers := gorm.NewPapersStore(db)
//	err := papers.SavePaper(&store.Paper{ArxivID: "2408.01234v1", ...})
//	if err != nil {
//	    if errors.Is(err, store.ErrPaperExists) {
//	        // Duplicate, skip
//	    }
//	}
package store
