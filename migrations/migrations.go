// Package migrations embeds the SQL schema migrations so binaries can apply
// them without shipping loose files alongside the executable.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
