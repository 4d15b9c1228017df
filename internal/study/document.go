package study

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDocument = errors.New("unknown document")
	ErrUnknownCategory = errors.New("unknown category")
)

// Category groups documents by audience.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryPilot       Category = "pilot"
	CategoryMechanic    Category = "mechanic"
	CategoryRegulations Category = "regulations"
)

// Categories lists the selectable categories in tab order.
var Categories = []Category{CategoryAll, CategoryPilot, CategoryMechanic, CategoryRegulations}

// Label is the display name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "All"
	case CategoryPilot:
		return "Pilot"
	case CategoryMechanic:
		return "Mechanic"
	case CategoryRegulations:
		return "Regulations"
	}
	return string(c)
}

// ParseCategory accepts any of Categories, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Document is one study reference.
type Document struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Category    Category `yaml:"category"`
	Description string   `yaml:"description"`
	Content     string   `yaml:"content,omitempty"`
}

// Matches reports whether d passes the category and query filters.
// An empty query matches everything.
func (d Document) Matches(category Category, query string) bool {
	if category != CategoryAll && d.Category != category {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.Title), q) ||
		strings.Contains(strings.ToLower(d.Description), q)
}

// Filter returns the documents matching category and query, keeping their
// order. The input is not modified.
func Filter(docs []Document, category Category, query string) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if d.Matches(category, query) {
			out = append(out, d)
		}
	}
	return out
}
