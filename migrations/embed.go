// Package migrations holds the credential schema. Pool.Migrate applies the
// *.up.sql files; the *.down.sql files are for manual rollback.
package migrations

import "embed"

//go:embed *.up.sql *.down.sql
var FS embed.FS
