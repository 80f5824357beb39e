package listing

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-showcase/internal/catalog"
)

// Query parameter names carrying the filter state.
const (
	ParamCategory = "category"
	ParamType     = "type"
	ParamTag      = "tag"
)

// State is the filter selection. Empty strings mean "not selected".
type State struct {
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Type     string `json:"type,omitempty"`
}

// SelectCategory returns the state after the user picks key. Picking the
// current category resets every axis; picking a category other than "all"
// clears the type selection.
func (s State) SelectCategory(key string) State {
	if key == s.Category {
		return State{}
	}
	s.Category = key
	if key != AllCategory {
		s.Type = ""
	}
	return s
}

// SelectTag toggles tag: the current tag is deselected, any other replaces it.
func (s State) SelectTag(tag string) State {
	if tag == s.Tag {
		s.Tag = ""
	} else {
		s.Tag = tag
	}
	return s
}

// SelectType toggles the type selection the same way as SelectTag.
func (s State) SelectType(kind string) State {
	if kind == s.Type {
		s.Type = ""
	} else {
		s.Type = kind
	}
	return s
}

// TypeActive reports whether the type filter participates in Apply.
func (s State) TypeActive() bool {
	return s.Category == AllCategory && s.Type != ""
}

// IsZero reports whether nothing is selected.
func (s State) IsZero() bool {
	return s == State{}
}

// Match reports whether item passes the filter.
func (s State) Match(item catalog.Item) bool {
	if s.TypeActive() && string(item.Kind) != s.Type {
		return false
	}
	if s.Tag != "" && !item.HasTag(s.Tag) {
		return false
	}
	return true
}

// Apply returns the items that pass the filter, preserving order. The input
// is not modified.
func (s State) Apply(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if s.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// ApplyCatalog filters every collection of cat independently.
func (s State) ApplyCatalog(cat catalog.Catalog) catalog.Catalog {
	return catalog.Catalog{
		Cases:   s.Apply(cat.Cases),
		News:    s.Apply(cat.News),
		Shop:    s.Apply(cat.Shop),
		Banners: s.Apply(cat.Banners),
	}
}

// Query encodes the state as URL query values, omitting empty axes.
func (s State) Query() url.Values {
	values := url.Values{}
	if s.Category != "" {
		values.Set(ParamCategory, s.Category)
	}
	if s.Type != "" {
		values.Set(ParamType, s.Type)
	}
	if s.Tag != "" {
		values.Set(ParamTag, s.Tag)
	}
	return values
}

// ParseState reads a state from query values. Unknown categories are
// dropped when table is provided, and the type is dropped unless the
// category is "all", so the result is always a state reachable through the
// Select methods.
func ParseState(values url.Values, table *Table) State {
	state := State{
		Category: strings.TrimSpace(values.Get(ParamCategory)),
		Tag:      strings.TrimSpace(values.Get(ParamTag)),
		Type:     strings.ToLower(strings.TrimSpace(values.Get(ParamType))),
	}
	if table != nil && state.Category != "" && !table.Has(state.Category) {
		state.Category = ""
	}
	if state.Category != AllCategory {
		state.Type = ""
	}
	if state.Type != "" {
		if _, ok := catalog.ParseKind(state.Type); !ok {
			state.Type = ""
		}
	}
	return state
}
