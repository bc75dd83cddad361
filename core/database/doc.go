// Package database opens the relational warehouse that published results are loaded into.
//
// It wraps GORM and configures either a MySQL connection or a local sqlite file
// based on the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the database
// before returning it. Publishing to the database is optional, so callers decide
// whether a failed connection aborts the run.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live column list of a table. The
// warehouse uses them after migration to confirm the tables carry every column
// the result rows need.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "aggregate_results", []string{"difference"})
package database
