package activity

import "fmt"

// RunEvent represents one completed pass of the fetcher
type RunEvent struct {
	RunID        uint
	Keywords     string
	Found        int
	Saved        int
	Skipped      int
	Trigger      string // "schedule", "api" or "cli"
	Success      bool
	ErrorMessage string
}

func (e RunEvent) MessageID() string {
	return "fetch-run"
}

func (e RunEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("fetch run %d completed for %q: found %d, saved %d new", e.RunID, e.Keywords, e.Found, e.Saved)
	}
	msg := fmt.Sprintf("fetch run %d failed for %q", e.RunID, e.Keywords)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RunEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RunEvent) Facility() int {
	return FacilityDaemon
}

func (e RunEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDFetch: {
			"run":      fmt.Sprintf("%d", e.RunID),
			"keywords": e.Keywords,
			"found":    fmt.Sprintf("%d", e.Found),
			"saved":    fmt.Sprintf("%d", e.Saved),
			"skipped":  fmt.Sprintf("%d", e.Skipped),
		},
		SDIDAction: {
			"operation": "fetch",
		},
	}
	if e.Trigger != "" {
		sd[SDIDAction]["trigger"] = e.Trigger
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
