package model

import (
	"strings"
	"time"
)

// Paper represents a single arXiv paper stored by the bot
type Paper struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title;not null"`
	Authors   string    `gorm:"column:authors"`
	Summary   string    `gorm:"column:summary"`
	Published time.Time `gorm:"column:published"`
	ArxivURL  string    `gorm:"column:arxiv_url;uniqueIndex"`
	PDFURL    string    `gorm:"column:pdf_url"`
	ArxivID   string    `gorm:"column:arxiv_id;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Paper) TableName() string {
	return "papers"
}

// AuthorList splits the comma-joined authors column back into names.
func (p *Paper) AuthorList() []string {
	if p.Authors == "" {
		return nil
	}
	parts := strings.Split(p.Authors, ", ")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// PrimaryAuthor returns the first listed author, or an empty string.
func (p *Paper) PrimaryAuthor() string {
	names := p.AuthorList()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
