// Package migrations embeds the SQL migration files so the server can
// migrate its own schema at startup and the tests can build one from scratch.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Feed it to a goose provider instead of relying on a filesystem
// path at runtime.
//
//go:embed *.sql
var FS embed.FS
