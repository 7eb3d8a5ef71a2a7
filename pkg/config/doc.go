// Package config provides configuration management for the paper bot.
//
// This package handles loading and validating bot configuration from
// environment variables and a YAML configuration file.
//
// # Configuration Sources
//
// Configuration is loaded from, in order of increasing precedence:
//
//   - Built-in defaults
//   - paperbot.yml (in PAPERBOT_CONFIG_PATH, default /etc/paperbot)
//   - Environment variables
//
// # Key Configuration Options
//
//   - PAPERBOT_KEYWORDS: Comma-separated search keywords
//   - PAPERBOT_MAX_RESULTS: Papers fetched per run
//   - PAPERBOT_POLL_INTERVAL_HOURS: Sleep between fetch runs
//   - PAPERBOT_LOG_LEVEL: Logging verbosity
//   - DATABASE_URL: Database connection
//   - PORT: Server listen port
package config
