// Package migrations embeds the goose migration scripts so the server
// binary can bring the schema up to date without a migrations directory
// on disk.
package migrations

import "embed"

// FS holds the SQL migration scripts, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
