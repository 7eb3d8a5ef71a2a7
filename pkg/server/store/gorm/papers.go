package gorm

import (
	"github.com/arxivtools/paperbot/pkg/model"
	"github.com/arxivtools/paperbot/pkg/server/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure PapersStore implements store.PapersStore
var _ store.PapersStore = (*PapersStore)(nil)

// PapersStore implements store.PapersStore using GORM
type PapersStore struct {
	db *gorm.DB
}

// NewPapersStore creates a new PapersStore
func NewPapersStore(db *gorm.DB) *PapersStore {
	return &PapersStore{db: db}
}

// SavePaper inserts a paper, skipping duplicates.
func (s *PapersStore) SavePaper(paper *store.Paper) error {
	row := model.Paper{
		Title:     paper.Title,
		Authors:   paper.Authors,
		Summary:   paper.Summary,
		Published: paper.Published,
		ArxivURL:  paper.ArxivURL,
		PDFURL:    paper.PDFURL,
		ArxivID:   paper.ArxivID,
	}

	// ON CONFLICT DO NOTHING keeps the insert race-free against a
	// concurrent fetcher; zero rows affected means a duplicate
	tx := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrPaperExists
	}

	paper.ID = row.ID
	paper.CreatedAt = row.CreatedAt
	return nil
}

// ListPapers returns papers ordered by published date, newest first,
// optionally filtered by a case-insensitive search term.
func (s *PapersStore) ListPapers(search string, limit, offset int) ([]store.Paper, error) {
	var rows []model.Paper

	query := applySearch(s.db.Order("published desc"), search)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	papers := make([]store.Paper, 0, len(rows))
	for _, row := range rows {
		papers = append(papers, toStorePaper(row))
	}
	return papers, nil
}

// FetchPaper retrieves a paper by its short arXiv ID.
func (s *PapersStore) FetchPaper(arxivID string) (*store.Paper, error) {
	var row model.Paper

	tx := s.db.Where("arxiv_id = ?", arxivID).First(&row)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrPaperNotFound
		}
		return nil, tx.Error
	}

	paper := toStorePaper(row)
	return &paper, nil
}

// CountPapers returns the number of stored papers matching the search.
func (s *PapersStore) CountPapers(search string) (int64, error) {
	var count int64
	query := applySearch(s.db.Model(&model.Paper{}), search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	pattern := "%" + search + "%"
	return query.Where(
		"title ILIKE ? OR authors ILIKE ? OR summary ILIKE ?",
		pattern, pattern, pattern,
	)
}

func toStorePaper(row model.Paper) store.Paper {
	return store.Paper{
		ID:        row.ID,
		Title:     row.Title,
		Authors:   row.Authors,
		Summary:   row.Summary,
		Published: row.Published,
		ArxivURL:  row.ArxivURL,
		PDFURL:    row.PDFURL,
		ArxivID:   row.ArxivID,
		CreatedAt: row.CreatedAt,
	}
}
