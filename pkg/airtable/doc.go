// Package airtable mirrors stored papers into an Airtable table.
//
// Mirroring is best-effort: the bot initializes the client from the
// AIRTABLE_TOKEN, AIRTABLE_BASE_ID and AIRTABLE_TABLE_NAME environment
// variables and skips mirroring entirely when they are not set. Failed
// mirror calls are logged and never fail a fetch run.
//
// The column names written ("Title", "Authors", "Published Date",
// "Summary", "ArXiv URL", "PDF URL", "ArXiv ID", "Timestamp") match the
// table layout the bot has always used, so existing bases keep working.
package airtable
