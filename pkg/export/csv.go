package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/arxivtools/paperbot/pkg/server/store"
)

// Header is the CSV column layout. The names match the sheet layout
// the bot has always produced, so downstream imports keep working.
var Header = []string{
	"Title", "Authors", "Published Date", "Summary",
	"ArXiv URL", "PDF URL", "ArXiv ID", "Timestamp",
}

// Write writes all papers to path, replacing any existing file.
// Returns the number of rows written.
func Write(path string, papers []store.Paper) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count, err := writeRows(w, papers)
	if err != nil {
		return count, err
	}

	w.Flush()
	return count, w.Error()
}

// Append appends papers to path, writing the header only when the file
// doesn't exist yet. Returns the number of rows written.
func Append(path string, papers []store.Paper) (int, error) {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(Header); err != nil {
			return 0, fmt.Errorf("failed to write header: %w", err)
		}
	}

	count, err := writeRows(w, papers)
	if err != nil {
		return count, err
	}

	w.Flush()
	return count, w.Error()
}

func writeRows(w *csv.Writer, papers []store.Paper) (int, error) {
	count := 0
	for _, paper := range papers {
		if err := w.Write(Row(paper)); err != nil {
			return count, fmt.Errorf("failed to write row for %s: %w", paper.ArxivID, err)
		}
		count++
	}
	return count, nil
}

// Row formats one paper as a CSV record in Header order.
func Row(paper store.Paper) []string {
	published := ""
	if !paper.Published.IsZero() {
		published = paper.Published.Format("2006-01-02 15:04:05")
	}
	timestamp := ""
	if !paper.CreatedAt.IsZero() {
		timestamp = paper.CreatedAt.Format(time.RFC3339)
	}

	return []string{
		paper.Title,
		paper.Authors,
		published,
		paper.Summary,
		paper.ArxivURL,
		paper.PDFURL,
		paper.ArxivID,
		timestamp,
	}
}
