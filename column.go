package gridview

import (
	"fmt"
	"iter"
)

// Mode selects the rendering targets a column participates in.
type Mode uint8

const (
	// ModeTable includes the column in HTML table rendering.
	ModeTable Mode = 1 << iota
	// ModeExport includes the column in flat spreadsheet exports.
	ModeExport

	// ModeBoth includes the column everywhere. A zero Mode on a column
	// declaration is normalized to ModeBoth.
	ModeBoth = ModeTable | ModeExport
)

// Attrs holds HTML attributes for a cell or element. The "class" key is
// special during merging: tokens accumulate instead of overwriting.
type Attrs map[string]string

// Cell is the tagged form of a cell result: a value plus attribute
// overrides for the enclosing td. Cell functions may return a Cell, a plain
// value, or the legacy pair form []any{value, Attrs}.
type Cell struct {
	Value any
	Attrs Attrs
}

// CellFunc computes one cell from a row.
type CellFunc[T any] func(row T) any

// RowContext carries per-row rendering context for columns that declare
// CellCtx. Band is the row's current cycle token ("odd" or "even").
type RowContext[T any] struct {
	Index int
	Band  string
	State *State[T]
}

// CellCtxFunc is a cell function that additionally receives the row's
// rendering context. Action columns use it to build per-row links.
type CellCtxFunc[T any] func(rc RowContext[T], row T) any

// FilterContext is handed to a column's filter renderer.
type FilterContext struct {
	Grid      string // grid name, namespace for generated input names
	Attribute string // bound attribute of the column
	Input     string // suggested input name ({grid}[filter][{attribute}])
	Value     string // currently active filter value, or ""
}

// FilterFunc renders the filter widget markup for one column.
type FilterFunc func(fc FilterContext) string

// Column declares one output column of a grid.
//
// A Sortable column must name an Attribute and include ModeTable. Every
// column must provide Cell or CellCtx; CellCtx wins when both are set.
// DetachKey moves the column's filter out of the filter
// row: the markup is stashed in the render buffer and retrieved later with
// [RenderDetachedFilter].
type Column[T any] struct {
	Label     string
	Attribute string
	Sortable  bool
	Cell      CellFunc[T]
	CellCtx   CellCtxFunc[T]
	Filter    FilterFunc
	DetachKey string
	Mode      Mode
	Attrs     Attrs
}

func (c Column[T]) appliesTo(m Mode) bool { return c.Mode&m != 0 }

func (c Column[T]) hasCellFn() bool { return c.Cell != nil || c.CellCtx != nil }

// Columns is an ordered registry of validated column declarations, built
// once per render call.
type Columns[T any] struct {
	cols []Column[T]
}

// NewColumns validates the declarations and builds the registry,
// preserving declaration order. It fails with ErrInvalidColumn on an
// inconsistent declaration.
func NewColumns[T any](decls ...Column[T]) (*Columns[T], error) {
	cols := make([]Column[T], 0, len(decls))
	for i, c := range decls {
		if c.Mode == 0 {
			c.Mode = ModeBoth
		}
		if c.Sortable && c.Attribute == "" {
			return nil, fmt.Errorf("%w: column %d (%q) is sortable but has no attribute", ErrInvalidColumn, i, c.Label)
		}
		if c.Sortable && !c.appliesTo(ModeTable) {
			return nil, fmt.Errorf("%w: column %d (%q) is sortable but excluded from table mode", ErrInvalidColumn, i, c.Label)
		}
		if !c.hasCellFn() {
			return nil, fmt.Errorf("%w: column %d (%q) has no cell function", ErrInvalidColumn, i, c.Label)
		}
		if c.DetachKey != "" && c.Filter == nil {
			return nil, fmt.Errorf("%w: column %d (%q) declares detach key %q without a filter", ErrInvalidColumn, i, c.Label, c.DetachKey)
		}
		cols = append(cols, c)
	}
	return &Columns[T]{cols: cols}, nil
}

// ForMode returns a restartable sequence of the columns applicable to m,
// in declaration order.
func (cs *Columns[T]) ForMode(m Mode) iter.Seq[Column[T]] {
	return func(yield func(Column[T]) bool) {
		for _, c := range cs.cols {
			if !c.appliesTo(m) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Count returns the number of columns applicable to m.
func (cs *Columns[T]) Count(m Mode) int {
	n := 0
	for _, c := range cs.cols {
		if c.appliesTo(m) {
			n++
		}
	}
	return n
}

// LastApplicable returns the final column applicable to m.
func (cs *Columns[T]) LastApplicable(m Mode) (Column[T], bool) {
	for i := len(cs.cols) - 1; i >= 0; i-- {
		if cs.cols[i].appliesTo(m) {
			return cs.cols[i], true
		}
	}
	var zero Column[T]
	return zero, false
}

// AnyFilter reports whether any column applicable to m carries a filter
// widget.
func (cs *Columns[T]) AnyFilter(m Mode) bool {
	for _, c := range cs.cols {
		if c.appliesTo(m) && c.Filter != nil {
			return true
		}
	}
	return false
}

// CanFoldControls reports whether the trailing table column can host the
// shared filter-control icons. Only an unbound column qualifies: folding
// into a sortable or filterable column would create an ambiguous click
// target.
func (cs *Columns[T]) CanFoldControls() bool {
	last, ok := cs.LastApplicable(ModeTable)
	return ok && last.Attribute == ""
}

// allFiltersDetached reports whether every filter-bearing table column
// declares a detach key. False when no table column has a filter at all.
func (cs *Columns[T]) allFiltersDetached() bool {
	seen := false
	for _, c := range cs.cols {
		if !c.appliesTo(ModeTable) || c.Filter == nil {
			continue
		}
		seen = true
		if c.DetachKey == "" {
			return false
		}
	}
	return seen
}
