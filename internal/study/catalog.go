package study

import (
	"errors"
	"fmt"
	"slices"
)

// Catalog is a fixed, ordered set of documents.
type Catalog struct {
	docs []Document
}

// NewCatalog validates docs and returns a catalog over a copy of them.
func NewCatalog(docs []Document) (*Catalog, error) {
	var errs []error
	seen := make(map[string]bool, len(docs))
	for i, d := range docs {
		switch {
		case d.ID == "":
			errs = append(errs, fmt.Errorf("document %d: missing id", i))
		case seen[d.ID]:
			errs = append(errs, fmt.Errorf("document %q: duplicate id", d.ID))
		}
		seen[d.ID] = true
		if d.Title == "" {
			errs = append(errs, fmt.Errorf("document %q: missing title", d.ID))
		}
		if d.Category == CategoryAll || !slices.Contains(Categories, d.Category) {
			errs = append(errs, fmt.Errorf("document %q: %w %q", d.ID, ErrUnknownCategory, d.Category))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Catalog{docs: slices.Clone(docs)}, nil
}

// Len returns the number of documents.
func (c *Catalog) Len() int { return len(c.docs) }

// All returns every document in catalog order.
func (c *Catalog) All() []Document { return slices.Clone(c.docs) }

// Filter applies Filter to the catalog.
func (c *Catalog) Filter(category Category, query string) []Document {
	return Filter(c.docs, category, query)
}

// Find returns the document with the given id.
func (c *Catalog) Find(id string) (Document, error) {
	for _, d := range c.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, fmt.Errorf("%w: %q", ErrUnknownDocument, id)
}

// Categories returns the categories that have at least one document,
// preceded by CategoryAll.
func (c *Catalog) Categories() []Category {
	out := []Category{CategoryAll}
	for _, cat := range Categories[1:] {
		if slices.ContainsFunc(c.docs, func(d Document) bool { return d.Category == cat }) {
			out = append(out, cat)
		}
	}
	return out
}

// Counts returns the number of documents per category, including
// CategoryAll.
func (c *Catalog) Counts() map[Category]int {
	counts := map[Category]int{CategoryAll: len(c.docs)}
	for _, d := range c.docs {
		counts[d.Category]++
	}
	return counts
}
