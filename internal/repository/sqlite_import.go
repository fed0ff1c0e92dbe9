package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/bazaar/internal/db"
	"github.com/alexanderramin/bazaar/internal/domain"
)

// ErrNoImports is returned by Latest before the first import.
var ErrNoImports = errors.New("catalog has never been imported")

type SQLiteImportRepo struct {
	db db.DBTX
}

func NewSQLiteImportRepo(conn db.DBTX) *SQLiteImportRepo {
	return &SQLiteImportRepo{db: conn}
}

func (r *SQLiteImportRepo) Record(ctx context.Context, imp *domain.CatalogImport) error {
	if imp.ImportedAt.IsZero() {
		imp.ImportedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_imports (source, product_count, imported_at) VALUES (?, ?, ?)`,
		imp.Source, imp.ProductCount, imp.ImportedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading import id: %w", err)
	}
	imp.ID = id
	return nil
}

func (r *SQLiteImportRepo) Latest(ctx context.Context) (*domain.CatalogImport, error) {
	var (
		imp        domain.CatalogImport
		importedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, product_count, imported_at FROM catalog_imports ORDER BY id DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.ProductCount, &importedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoImports
		}
		return nil, fmt.Errorf("loading latest import: %w", err)
	}
	imp.ImportedAt, err = time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing imported_at: %w", err)
	}
	return &imp, nil
}
