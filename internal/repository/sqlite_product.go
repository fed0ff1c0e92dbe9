package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/alexanderramin/bazaar/internal/db"
	"github.com/alexanderramin/bazaar/internal/domain"
)

// SQLiteProductRepo implements ProductRepo using a SQLite database.
type SQLiteProductRepo struct {
	db db.DBTX
}

// NewSQLiteProductRepo creates a product repo over a *sql.DB or *sql.Tx.
func NewSQLiteProductRepo(conn db.DBTX) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: conn}
}

const productColumns = `id, title, price, rating, reviews, category, brand, features, product_link, image_url`

// ReplaceAll swaps the stored catalog for products. Run it inside a unit of
// work to make the swap atomic.
func (r *SQLiteProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clearing products: %w", err)
	}
	return r.insertFrom(ctx, 1, products)
}

// Append adds products after the current end of the catalog.
func (r *SQLiteProductRepo) Append(ctx context.Context, products []domain.Product) error {
	var maxSeq int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM products`).Scan(&maxSeq); err != nil {
		return fmt.Errorf("reading product sequence: %w", err)
	}
	return r.insertFrom(ctx, maxSeq+1, products)
}

func (r *SQLiteProductRepo) insertFrom(ctx context.Context, seq int, products []domain.Product) error {
	query := `INSERT INTO products (` + productColumns + `, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := nowUTC()
	for i, p := range products {
		features, err := json.Marshal(p.Features)
		if err != nil {
			return fmt.Errorf("encoding features of %s: %w", p.ID, err)
		}
		if p.Features == nil {
			features = []byte("{}")
		}
		_, err = r.db.ExecContext(ctx, query,
			p.ID,
			p.Title,
			nullableFloat(p.Price),
			nullableFloat(p.Rating),
			p.Reviews,
			p.Category,
			p.Brand,
			string(features),
			p.Link,
			nullableString(p.ImageURL),
			seq+i,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting product %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *SQLiteProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the stored products among ids in catalog order. Unknown
// ids are skipped.
func (r *SQLiteProductRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY seq`
	return r.queryProducts(ctx, query, args...)
}

func (r *SQLiteProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY seq`)
}

func (r *SQLiteProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY seq`, category)
}

func (r *SQLiteProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

func (r *SQLiteProductRepo) Categories(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p        domain.Product
		price    sql.NullFloat64
		rating   sql.NullFloat64
		features string
		imageURL sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Title, &price, &rating, &p.Reviews,
		&p.Category, &p.Brand, &features, &p.Link, &imageURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning product: %w", err)
	}
	p.Price = floatPtr(price)
	p.Rating = floatPtr(rating)
	p.ImageURL = stringPtr(imageURL)

	p.Features = domain.FeatureSet{}
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return p, fmt.Errorf("decoding features of %s: %w", p.ID, err)
	}
	return p, nil
}
