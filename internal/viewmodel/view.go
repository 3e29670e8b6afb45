package viewmodel

import (
	"sort"

	"github.com/go-faster/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/productcatalog/backend/internal/domain"
)

// ChunkSize is the number of products per display group
const ChunkSize = 4

// SortMethod selects the display ordering
type SortMethod string

const (
	SortAlphabetical SortMethod = "alphabetical"
	SortCount        SortMethod = "count"
)

// ParseSortMethod validates a sort method name
func ParseSortMethod(s string) (SortMethod, error) {
	switch m := SortMethod(s); m {
	case SortAlphabetical, SortCount:
		return m, nil
	default:
		return "", errors.Wrapf(domain.ErrInvalidSortMethod, "%q", s)
	}
}

// SortProducts returns a sorted copy of products; ties keep their input order.
// Alphabetical ordering uses locale-aware collation of names.
func SortProducts(products []domain.Product, method SortMethod, tag language.Tag) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch method {
	case SortCount:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Count < sorted[j].Count
		})
	default:
		col := collate.New(tag)
		sort.SliceStable(sorted, func(i, j int) bool {
			return col.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	}

	return sorted
}

// Chunk splits items into consecutive groups of size; the last may be shorter
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end:end])
	}
	return chunks
}
