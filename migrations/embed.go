// Package migrations holds the goose SQL migrations, embedded so the service
// and cmd/migrate can apply them without a checkout on disk.
package migrations

import "embed"

// FS contains every *.sql migration at its root.
//
//go:embed *.sql
var FS embed.FS
