// Package migrations embeds the goose SQL migrations so the runner
// works from any working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
