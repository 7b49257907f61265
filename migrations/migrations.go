// Package migrations embeds the SQL schema files into the binary so
// the server can apply them without the files present on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
