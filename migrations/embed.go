// Package migrations holds the SQL schema applied with golang-migrate.
package migrations

import "embed"

// FS contains every *.sql migration.
//
//go:embed *.sql
var FS embed.FS
