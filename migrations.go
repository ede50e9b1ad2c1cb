package lnkmx

import (
	"embed"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// MigrationsRoot is the directory of migrationsFS holding the per-dialect
// migration folders.
const MigrationsRoot = "data/sql/migrations"

// GetMigrationsFS returns the embedded migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
