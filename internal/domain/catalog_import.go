package domain

import "time"

// CatalogImport records one load of CSV files into the catalog store.
type CatalogImport struct {
	ID           int64     `json:"id"`
	Source       string    `json:"source"`
	ProductCount int       `json:"product_count"`
	ImportedAt   time.Time `json:"imported_at"`
}
