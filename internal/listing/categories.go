package listing

import (
	"strings"

	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
)

// AllCategory is the category key under which the type filter applies.
const AllCategory = runtimeconfig.AllCategory

// Category is one entry of the category table.
type Category struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Tags  []string `json:"tags"`
}

// TypeOption labels an item kind for the type filter.
type TypeOption struct {
	Kind  catalog.Kind `json:"kind"`
	Label string       `json:"label"`
}

// Table is the fixed, ordered category -> tag list table.
type Table struct {
	categories []Category
	index      map[string]int
	types      []TypeOption
}

// NewTable builds a table from configuration. Blank keys and unknown kinds
// are skipped; the first entry wins for duplicate keys.
func NewTable(cfg runtimeconfig.ListingConfig) *Table {
	t := &Table{index: make(map[string]int, len(cfg.Categories))}
	for _, entry := range cfg.Categories {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			continue
		}
		if _, exists := t.index[key]; exists {
			continue
		}
		tags := make([]string, 0, len(entry.Tags))
		for _, tag := range entry.Tags {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			label = key
		}
		t.index[key] = len(t.categories)
		t.categories = append(t.categories, Category{Key: key, Label: label, Tags: tags})
	}
	for _, entry := range cfg.Types {
		kind, ok := catalog.ParseKind(entry.Kind)
		if !ok {
			continue
		}
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			label = string(kind)
		}
		t.types = append(t.types, TypeOption{Kind: kind, Label: label})
	}
	return t
}

// DefaultTable returns the table built from the default configuration.
func DefaultTable() *Table {
	return NewTable(runtimeconfig.DefaultConfig().Listing)
}

// Categories returns the categories in configured order.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Types returns the type filter options in configured order.
func (t *Table) Types() []TypeOption {
	if t == nil {
		return nil
	}
	out := make([]TypeOption, len(t.types))
	copy(out, t.types)
	return out
}

// Lookup returns the category registered under key.
func (t *Table) Lookup(key string) (Category, bool) {
	if t == nil {
		return Category{}, false
	}
	idx, ok := t.index[key]
	if !ok {
		return Category{}, false
	}
	return t.categories[idx], true
}

// Has reports whether key names a category.
func (t *Table) Has(key string) bool {
	_, ok := t.Lookup(key)
	return ok
}

// AvailableTags returns the tag chips for the state's category. The result is
// empty when no category is selected or the category defines no tags.
func (t *Table) AvailableTags(state State) []string {
	category, ok := t.Lookup(state.Category)
	if !ok || len(category.Tags) == 0 {
		return []string{}
	}
	out := make([]string, len(category.Tags))
	copy(out, category.Tags)
	return out
}
