package activity

import (
	"fmt"
	"strings"
)

// KeywordsEvent represents a change to the search keywords
type KeywordsEvent struct {
	Old      []string
	New      []string
	ClientIP string
	Source   string // "api" or "cli"
}

func (e KeywordsEvent) MessageID() string {
	return "keywords"
}

func (e KeywordsEvent) Message() string {
	return fmt.Sprintf("keywords changed from %q to %q",
		strings.Join(e.Old, ", "), strings.Join(e.New, ", "))
}

func (e KeywordsEvent) Severity() Severity {
	return SeverityNotice
}

func (e KeywordsEvent) Facility() int {
	return FacilityUser
}

func (e KeywordsEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDConfig: {
			"old": strings.Join(e.Old, ","),
			"new": strings.Join(e.New, ","),
		},
		SDIDAction: {
			"operation": "set-keywords",
		},
	}
	if e.Source != "" {
		sd[SDIDAction]["source"] = e.Source
	}
	if e.ClientIP != "" {
		sd[SDIDClient] = map[string]string{"ip": e.ClientIP}
	}
	return sd
}
