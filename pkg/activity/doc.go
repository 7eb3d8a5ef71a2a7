// Package activity provides activity logging for paper bot operations.
//
// This package implements structured logging for operationally relevant
// events such as fetch runs, stored papers and keyword changes. Events
// are written to stdout in RFC5424 syslog format and, when
// ACTIVITY_DATABASE_URL is set, persisted to a messages table.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Fetch run events (completed/failed)
//   - Paper events (saved/duplicate)
//   - Keyword change events
//   - Export events
//
// # Usage
//
//	activity.Log(activity.RunEvent{
//	    RunID:    run.ID,
//	    Keywords: "RAG, agents",
//	    Found:    10,
//	    Saved:    3,
//	    Success:  true,
//	})
//
// Activity logging can be turned off with PAPERBOT_ACTIVITY_ENABLED=false.
package activity
