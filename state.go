package gridview

import (
	"net/url"
	"strconv"
)

// SortDir is a sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Toggle returns the direction a sort link should request: ascending flips
// to descending, anything else to ascending.
func (d SortDir) Toggle() SortDir {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Sort names the attribute and direction a grid is currently ordered by.
type Sort struct {
	Attribute string
	Dir       SortDir
}

// State is the resolved query state of one grid for one request: the
// materialized page of rows plus pagination, sort, and filter descriptors.
// It is built by the data-loading layer, rendered exactly once, and
// discarded with the request.
type State[T any] struct {
	// Name namespaces every generated DOM id and query parameter.
	Name string

	Rows       []T
	TotalCount int
	Offset     int
	PageSize   int
	// ShowingAll is set when pagination is bypassed and Rows holds the
	// entire collection.
	ShowingAll bool

	ActiveSort *Sort
	Filters    map[string]string

	// Focus names the filter attribute whose input the client runtime
	// should re-focus after a round trip.
	Focus string

	guard guard
}

// guard is the render-once state of a State. A plain render keeps only the
// marker; a render that stashed detached filters keeps the buffer and the
// produced markup so a repeated call can return the cached artifact.
type guard struct {
	state guardState
	buf   *Buffer
	out   string
}

type guardState uint8

const (
	guardUnrendered guardState = iota
	guardRendered
	guardBuffered
)

func (g *guard) markRendered() { g.state = guardRendered }

func (g *guard) markBuffered(buf *Buffer, out string) {
	g.state = guardBuffered
	g.buf = buf
	g.out = out
}

// Rendered reports whether the grid has completed its render pass.
func (s *State[T]) Rendered() bool { return s.guard.state != guardUnrendered }

// sorted reports whether attribute is the grid's active sort column.
func (s *State[T]) sorted(attribute string) (SortDir, bool) {
	if s.ActiveSort == nil || attribute == "" || s.ActiveSort.Attribute != attribute {
		return "", false
	}
	return s.ActiveSort.Dir, true
}

// filterValue returns the active filter value bound to attribute.
func (s *State[T]) filterValue(attribute string) string {
	if s.Filters == nil {
		return ""
	}
	return s.Filters[attribute]
}

// anyFilterActive reports whether at least one filter value is set.
func (s *State[T]) anyFilterActive() bool {
	for _, v := range s.Filters {
		if v != "" {
			return true
		}
	}
	return false
}

// pageLength is the number of rows on the current page.
func (s *State[T]) pageLength() int { return len(s.Rows) }

// Params serializes the grid's sort, filter, and paging state as query
// parameters, each key prefixed with the grid name so several grids can
// share one URL.
func (s *State[T]) Params() url.Values {
	v := url.Values{}
	p := func(key string) string { return s.Name + "[" + key + "]" }
	if s.ActiveSort != nil {
		v.Set(p("sort"), s.ActiveSort.Attribute)
		v.Set(p("dir"), string(s.ActiveSort.Dir))
	}
	for attr, val := range s.Filters {
		if val != "" {
			v.Set(p("filter")+"["+attr+"]", val)
		}
	}
	v.Set(p("start"), strconv.Itoa(s.Offset))
	if s.ShowingAll {
		v.Set(p("all"), "1")
	}
	return v
}
