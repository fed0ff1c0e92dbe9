// Package catalog reads product listings from CSV exports and answers
// filter/sort queries over them.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
)

const (
	filePrefix = "amazon_"
	fileSuffix = ".csv"
)

// Column names expected in the CSV header.
const (
	ColTitle   = "Title"
	ColPrice   = "Price"
	ColRating  = "Rating"
	ColReviews = "Reviews"
	ColBrand   = "Brand"
	ColLink    = "Product Link"
)

var ErrNoCatalogFiles = errors.New("no catalog files found")

// IDFunc assigns an identifier to a product of the given category.
type IDFunc func(category string) string

// RandomID returns "<category>_<8 hex chars>".
func RandomID(category string) string {
	return category + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Loader builds products from CSV rows.
type Loader struct {
	extractor features.Extractor
	newID     IDFunc
}

// NewLoader returns a loader. Nil arguments fall back to the regex extractor
// and RandomID.
func NewLoader(extractor features.Extractor, newID IDFunc) *Loader {
	if extractor == nil {
		extractor = features.NewExtractor()
	}
	if newID == nil {
		newID = RandomID
	}
	return &Loader{extractor: extractor, newID: newID}
}

// CategoryFromFilename maps "amazon_<category>.csv" to its category.
func CategoryFromFilename(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, filePrefix) || !strings.HasSuffix(base, fileSuffix) {
		return "", false
	}
	cat := strings.TrimSuffix(strings.TrimPrefix(base, filePrefix), fileSuffix)
	if cat == "" {
		return "", false
	}
	return cat, true
}

// LoadDir loads every catalog file in dir, in file name order.
func (l *Loader) LoadDir(dir string) ([]domain.Product, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := CategoryFromFilename(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoCatalogFiles)
	}
	sort.Strings(names)

	var all []domain.Product
	for _, name := range names {
		products, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, products...)
	}
	return all, nil
}

// LoadFile loads one catalog file; the category comes from its name.
func (l *Loader) LoadFile(path string) ([]domain.Product, error) {
	category, ok := CategoryFromFilename(path)
	if !ok {
		return nil, fmt.Errorf("%s: not a catalog file name (want %s<category>%s)", path, filePrefix, fileSuffix)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	products, err := l.Read(f, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return products, nil
}

// Read parses CSV rows with a header line into products of one category.
// Unparsable price or rating becomes nil; unparsable reviews become 0.
func (l *Loader) Read(r io.Reader, category string) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	col := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	products := []domain.Product{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		title := col(record, ColTitle)
		fs := l.extractor.Extract(title)
		products = append(products, domain.Product{
			ID:       l.newID(category),
			Title:    title,
			Price:    parseFloat(col(record, ColPrice)),
			Rating:   parseFloat(col(record, ColRating)),
			Reviews:  parseInt(col(record, ColReviews)),
			Category: category,
			Brand:    domain.CoalesceStr(col(record, ColBrand), features.Brand(fs)),
			Features: fs,
			Link:     col(record, ColLink),
		})
	}
	return products, nil
}

func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return strings.ReplaceAll(s, ",", "")
}

func parseFloat(s string) *float64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) int {
	s = normalizeNumber(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
