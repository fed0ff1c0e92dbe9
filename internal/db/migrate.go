package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id           TEXT PRIMARY KEY,
		seq          INTEGER NOT NULL,
		title        TEXT NOT NULL,
		price        REAL CHECK(price IS NULL OR price >= 0),
		rating       REAL,
		reviews      INTEGER NOT NULL DEFAULT 0,
		category     TEXT NOT NULL,
		brand        TEXT NOT NULL DEFAULT '',
		features     TEXT NOT NULL DEFAULT '{}',
		product_link TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_seq ON products(seq)`,

	`CREATE TABLE IF NOT EXISTS catalog_imports (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		source        TEXT NOT NULL,
		product_count INTEGER NOT NULL,
		imported_at   TEXT NOT NULL
	)`,

	`ALTER TABLE products ADD COLUMN image_url TEXT`,
}
