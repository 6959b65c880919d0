package importer

import (
	"strings"

	"catalog-backend/internal/domains/product/model"
)

// Index is a one-shot lookup structure over the existing catalog, built once
// per import run so matching stays O(1) per row regardless of catalog size.
// SKU and name keys are trimmed and lowercased; the first record claiming a
// key wins, matching catalog load order.
type Index struct {
	byID   map[int64]*model.Product
	bySKU  map[string]*model.Product
	byName map[string]*model.Product
}

// NewIndex builds the lookup index over a snapshot of the catalog.
func NewIndex(existing []model.Product) *Index {
	idx := &Index{
		byID:   make(map[int64]*model.Product, len(existing)),
		bySKU:  make(map[string]*model.Product, len(existing)),
		byName: make(map[string]*model.Product, len(existing)),
	}

	for i := range existing {
		record := &existing[i]

		if record.ID > 0 {
			if _, taken := idx.byID[record.ID]; !taken {
				idx.byID[record.ID] = record
			}
		}
		if key := matchKey(record.SKU); key != "" {
			if _, taken := idx.bySKU[key]; !taken {
				idx.bySKU[key] = record
			}
		}
		if key := matchKey(record.Name); key != "" {
			if _, taken := idx.byName[key]; !taken {
				idx.byName[key] = record
			}
		}
	}

	return idx
}

// Add registers a record inserted during the current run so later rows in
// the same file match it instead of inserting a duplicate. Key claiming
// follows the same first-wins rule as NewIndex.
func (idx *Index) Add(record *model.Product) {
	if record == nil {
		return
	}

	if record.ID > 0 {
		if _, taken := idx.byID[record.ID]; !taken {
			idx.byID[record.ID] = record
		}
	}
	if key := matchKey(record.SKU); key != "" {
		if _, taken := idx.bySKU[key]; !taken {
			idx.bySKU[key] = record
		}
	}
	if key := matchKey(record.Name); key != "" {
		if _, taken := idx.byName[key]; !taken {
			idx.byName[key] = record
		}
	}
}

// Match resolves an incoming draft to an existing record, trying identifiers
// in decreasing strength: explicit id, then SKU, then exact name. A present
// but unknown id falls through to the weaker keys rather than failing the
// row. Returns nil when nothing matches.
func (idx *Index) Match(draft *model.Product) *model.Product {
	if draft == nil {
		return nil
	}

	if draft.ID > 0 {
		if record, ok := idx.byID[draft.ID]; ok {
			return record
		}
	}
	if key := matchKey(draft.SKU); key != "" {
		if record, ok := idx.bySKU[key]; ok {
			return record
		}
	}
	if key := matchKey(draft.Name); key != "" {
		if record, ok := idx.byName[key]; ok {
			return record
		}
	}

	return nil
}

func matchKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
