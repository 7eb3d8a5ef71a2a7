// Package paperbot provides an arXiv research paper tracking bot and web server.
//
// The bot periodically searches the arXiv API for papers matching a set of
// configured keywords, stores new results in PostgreSQL and optionally mirrors
// them to an Airtable base. A small web dashboard and JSON API sit on top of
// the same database.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API and dashboard endpoint handlers
//   - pkg/bot: fetch loop that queries arXiv and stores new papers
//   - pkg/arxiv: arXiv Atom API client
//   - pkg/airtable: Airtable REST API client
//   - pkg/digest: Markdown digest generation
//   - pkg/export: CSV export of stored papers
//   - pkg/activity: activity event logging
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the paperbotctl CLI:
//
//	# Run database migrations
//	paperbotctl db migrate
//
//	# Configure search keywords
//	paperbotctl keywords set "large language models, agents"
//
//	# Start the server (fetches in the background on an interval)
//	paperbotctl server
//
//	# Or run a single fetch pass without the server
//	paperbotctl fetch
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - PAPERBOT_API_SECRET: shared secret for mutating API endpoints (auth disabled when unset)
//   - PAPERBOT_CONFIG_PATH: directory containing paperbot.yml (default: /etc/paperbot)
//   - PAPERBOT_KEYWORDS: comma-separated search keywords (overrides the config file)
//   - PAPERBOT_MAX_RESULTS: maximum papers fetched per run
//   - PAPERBOT_POLL_INTERVAL_HOURS: hours between fetch runs
//   - AIRTABLE_TOKEN, AIRTABLE_BASE_ID, AIRTABLE_TABLE_NAME: Airtable mirroring credentials
//   - PORT: Server port (default: 8000)
//
// For more information, see https://github.com/arxivtools/paperbot
package main
