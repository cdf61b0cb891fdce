package migration

import (
	"embed"
	"io/fs"
	"time"
)

//go:embed schema/*.sql
var embedded embed.FS

// Schema returns the embedded service schema rooted at the migration files.
func Schema() fs.FS {
	sub, err := fs.Sub(embedded, "schema")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migration is one schema file with its metadata.
type Migration struct {
	Version     string
	Description string
	SQL         string
	FilePath    string
	Checksum    string
}

// AppliedMigration is a row of the schema_migrations table.
type AppliedMigration struct {
	Version       string
	AppliedAt     time.Time
	ExecutionTime time.Duration
	Checksum      string
}

// Status summarises the migration state of a database.
type Status struct {
	CurrentVersion string
	Applied        []AppliedMigration
	Pending        []Migration
}
