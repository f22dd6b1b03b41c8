// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration. The only writer is the
// db export sink, which persists training tables.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the sink verify an externally managed
// table before inserting into it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "training_rows", []string{"order_id"})
package database
