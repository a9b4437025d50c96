package migrations

import "embed"

// FS contains embedded SQLite migrations for internhub storage.
//
//go:embed *.sql
var FS embed.FS
