// Package db embeds the SQL migrations so production builds don't need
// the migration files on disk.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
