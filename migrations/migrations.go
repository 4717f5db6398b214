// Package migrations embeds the per-dialect SQL migration files.
package migrations

import "embed"

//go:embed sqlite postgres
var FS embed.FS
