package database

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is idempotent, so it
// runs on each start without touching existing rows.
func Migrate(db *sql.DB) error {
	return ApplySchema(db, schema)
}

func ApplySchema(db *sql.DB, script string) error {
	if _, err := db.Exec(script); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
