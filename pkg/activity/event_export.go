package activity

import "fmt"

// ExportEvent represents a CSV export of the papers table
type ExportEvent struct {
	Path         string
	Count        int
	Success      bool
	ErrorMessage string
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("exported %d papers to %s", e.Count, e.Path)
	}
	msg := fmt.Sprintf("failed to export papers to %s", e.Path)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ExportEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ExportEvent) Facility() int {
	return FacilityUser
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "export",
			"result":    result,
			"count":     fmt.Sprintf("%d", e.Count),
		},
	}
}
