// Package migration applies versioned SQL schema files to a SQLite database.
//
// Migration files follow the {version}_{description}.sql naming convention
// (for example "001_create_schedules.sql") and are applied in ascending
// version order. Applied versions are tracked in the schema_migrations table
// so each file runs at most once.
//
// The service schema ships embedded in the binary:
//
//	manager := migration.NewManager(db, migration.Schema(), logger)
//	if _, err := manager.Run(ctx); err != nil {
//		return err
//	}
package migration
