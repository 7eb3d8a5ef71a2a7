package activity

import "fmt"

// PaperEvent represents a paper being stored, or skipped as a duplicate
type PaperEvent struct {
	ArxivID   string
	Title     string
	Duplicate bool
}

func (e PaperEvent) MessageID() string {
	return "paper"
}

func (e PaperEvent) Message() string {
	if e.Duplicate {
		return fmt.Sprintf("skipped duplicate paper %s", e.ArxivID)
	}
	return fmt.Sprintf("saved paper %s: %s", e.ArxivID, e.Title)
}

func (e PaperEvent) Severity() Severity {
	if e.Duplicate {
		return SeverityDebug
	}
	return SeverityInfo
}

func (e PaperEvent) Facility() int {
	return FacilityDaemon
}

func (e PaperEvent) StructuredData() map[string]map[string]string {
	result := "saved"
	if e.Duplicate {
		result = "duplicate"
	}
	return map[string]map[string]string{
		SDIDPaper: {
			"id": e.ArxivID,
		},
		SDIDAction: {
			"operation": "save",
			"result":    result,
		},
	}
}
