// Package model defines the database models for the paper bot.
//
// This package contains GORM models that map to the bot's PostgreSQL
// schema. The schema covers what the fetcher writes and what the web
// endpoints read back.
//
// # Core Models
//
//   - Paper: one arXiv paper, deduplicated by arXiv URL and short ID
//   - FetchRun: one pass of the fetcher over the arXiv API
//
// # Database Schema
//
// The database uses PostgreSQL with the following tables:
//
//   - papers: stored papers with unique arxiv_url and arxiv_id
//   - fetch_runs: fetch history with per-run counts and status
//   - messages: activity log entries (see pkg/activity)
package model
