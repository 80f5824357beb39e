package listing

import (
	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// View is the render model of the listing for one filter state.
type View struct {
	State         State        `json:"state"`
	Categories    []Category   `json:"categories"`
	Types         []TypeOption `json:"types"`
	TypeActive    bool         `json:"type_active"`
	AvailableTags []string     `json:"available_tags"`
	Rows          []Row        `json:"rows"`
	Total         int          `json:"total"`
}

// Engine composes listing views over a category table.
type Engine struct {
	table  *Table
	logger interfaces.Logger
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithEngineLogger injects the logger used for diagnostics.
func WithEngineLogger(logger interfaces.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine constructs an Engine. A nil table falls back to DefaultTable.
func NewEngine(table *Table, opts ...EngineOption) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	e := &Engine{table: table, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table exposes the category table.
func (e *Engine) Table() *Table {
	return e.table
}

// View filters cat with state and composes its rows.
func (e *Engine) View(cat catalog.Catalog, state State) View {
	filtered := state.ApplyCatalog(cat)
	rows := ComposeCatalog(filtered)
	if rows == nil {
		rows = []Row{}
	}
	view := View{
		State:         state,
		Categories:    e.table.Categories(),
		Types:         e.table.Types(),
		TypeActive:    state.TypeActive(),
		AvailableTags: e.table.AvailableTags(state),
		Rows:          rows,
		Total:         filtered.Len(),
	}
	e.logger.Debug("listing.view.composed",
		"category", state.Category,
		"type", state.Type,
		"tag", state.Tag,
		"items", view.Total,
		"rows", len(rows),
	)
	return view
}
