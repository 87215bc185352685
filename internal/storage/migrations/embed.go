package migrations

import "embed"

// FS holds the goose SQL migrations of the calculation journal.
//
//go:embed *.sql
var FS embed.FS
