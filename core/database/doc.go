// Package database opens the settings database and inspects its schema.
//
// Connect wraps GORM and picks the dialector from the configured driver:
// MySQL for shared deployments, SQLite for a single node or for tests
// (":memory:" gives a throwaway database).
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live column list so the
// settings migration and the "settings check" command can report a store
// that was created by an older release.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "stack_settings", []string{"version"})
package database
