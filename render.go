package gridview

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"sort"
)

// HTML marks a cell value as pre-rendered markup that must not be escaped.
// Everything else is escaped before emission.
type HTML string

// BeforeRower rows contribute a fragment spliced immediately before their
// <tr>.
type BeforeRower interface {
	BeforeRow() string
}

// AfterRower rows contribute a fragment spliced immediately after their
// <tr>.
type AfterRower interface {
	AfterRow() string
}

// RowAttrer rows contribute attributes to their own <tr>. The band class
// is appended to any class the row supplies.
type RowAttrer interface {
	RowAttrs() Attrs
}

// layout holds the phase-1 decisions that fix the visible column count for
// every subsequent row.
type layout struct {
	filtersSuppressed bool
	allDetached       bool
	actionFold        bool
	extraColumn       bool
	visibleCols       int
}

type renderer[T any] struct {
	st    *State[T]
	cols  *Columns[T]
	cfg   Config
	buf   *Buffer
	extra url.Values
}

func newRenderer[T any](st *State[T], cols *Columns[T], cfg Config) *renderer[T] {
	extra := st.Params()
	for k, v := range cfg.ExtraLinkParams {
		extra.Set(k, v)
	}
	return &renderer[T]{st: st, cols: cols, cfg: cfg, buf: &Buffer{}, extra: extra}
}

// layout computes the phase-1 booleans. Folding happens either because
// every filter is detached (no visible filter row at all) or because the
// caller asked to fold the shared controls into a qualifying trailing
// action column. The extra controls column exists only when neither holds.
func (r *renderer[T]) layout() layout {
	var lay layout
	lay.filtersSuppressed = r.cfg.ShowFilters == FiltersOff || !r.cols.AnyFilter(ModeTable)
	if !lay.filtersSuppressed {
		lay.allDetached = r.cols.allFiltersDetached()
		if !lay.allDetached {
			lay.actionFold = r.cfg.FoldFilterControls && r.cols.CanFoldControls()
		}
		lay.extraColumn = !lay.allDetached && !lay.actionFold
	}
	lay.visibleCols = r.cols.Count(ModeTable)
	if lay.extraColumn {
		lay.visibleCols++
	}
	return lay
}

func (r *renderer[T]) render() (string, error) {
	lay := r.layout()

	rootAttrs := mergeAttrs(Attrs{"id": "grid-" + r.st.Name, "class": "gridview-root"}, r.cfg.RootAttrs)
	r.buf.Writef("<div%s>\n", attrString(rootAttrs))
	if r.cfg.ShowUpperPagination {
		r.buf.Writef(`<div class="gridview-pager gridview-pager-top">%s</div>`+"\n", r.pager())
	}
	r.buf.Writef(`<table class="%s">`+"\n", html.EscapeString(r.cfg.TableClass))

	r.buf.WriteString("<thead>\n")
	r.emitHeader(lay)
	if !lay.filtersSuppressed {
		r.emitFilters(lay)
	}
	r.buf.WriteString("</thead>\n")
	if err := r.emitBody(lay); err != nil {
		return "", err
	}
	r.emitFooter(lay)

	r.buf.WriteString("</table>\n")
	r.emitStateCarrier()
	if r.cfg.DevMode {
		r.buf.WriteString(`<script>if(!window.GridView){console.warn("gridview: client runtime not loaded");}</script>` + "\n")
	}
	r.buf.WriteString("</div>\n")
	return r.buf.String(), nil
}

func (r *renderer[T]) toggleControl() string {
	return fmt.Sprintf(`<a class="gridview-filter-toggle" href="#" title="%s">%s</a>`,
		html.EscapeString(r.cfg.Translate("gridview.filter.toggle")),
		html.EscapeString(r.cfg.Translate("gridview.filter.toggle")))
}

func (r *renderer[T]) emitHeader(lay layout) {
	r.buf.Writef("<tr%s>\n", attrString(r.cfg.HeaderRowAttrs))

	i, n := 0, r.cols.Count(ModeTable)
	for c := range r.cols.ForMode(ModeTable) {
		last := i == n-1
		switch {
		case lay.actionFold && last:
			r.buf.Writef(`<th class="gridview-controls">%s</th>`+"\n", r.toggleControl())
		case c.Sortable:
			dir, active := r.st.sorted(c.Attribute)
			target := SortAsc
			cls := ""
			if active {
				target = dir.Toggle()
				cls = fmt.Sprintf(` class="sorted %s"`, dir)
			}
			href := r.cfg.Links.SortLink(r.st.Name, c.Attribute, target, r.extra)
			r.buf.Writef(`<th%s><a href="%s">%s</a></th>`+"\n",
				cls, html.EscapeString(href), html.EscapeString(c.Label))
		default:
			r.buf.Writef("<th>%s</th>\n", html.EscapeString(c.Label))
		}
		i++
	}
	if lay.extraColumn {
		r.buf.Writef(`<th class="gridview-controls">%s</th>`+"\n", r.toggleControl())
	}
	r.buf.WriteString("</tr>\n")
}

// filterControls renders the submit and reset affordances.
func (r *renderer[T]) filterControls() string {
	out := ""
	if !r.cfg.HideSubmitButton {
		href := r.cfg.Links.FilterLink(r.st.Name, r.extra)
		out += fmt.Sprintf(`<a class="gridview-filter-submit" href="%s">%s</a>`,
			html.EscapeString(href), html.EscapeString(r.cfg.Translate("gridview.filter.submit")))
	}
	if !r.cfg.HideResetButton {
		out += fmt.Sprintf(`<a class="gridview-filter-reset" href="#">%s</a>`,
			html.EscapeString(r.cfg.Translate("gridview.filter.reset")))
	}
	return out
}

func (r *renderer[T]) filterMarkup(c Column[T]) string {
	return c.Filter(FilterContext{
		Grid:      r.st.Name,
		Attribute: c.Attribute,
		Input:     r.st.Name + "[filter][" + c.Attribute + "]",
		Value:     r.st.filterValue(c.Attribute),
	})
}

func (r *renderer[T]) emitFilters(lay layout) {
	if lay.allDetached {
		// No visible row: every fragment goes into the buffer by key.
		for c := range r.cols.ForMode(ModeTable) {
			if c.Filter != nil {
				r.buf.Detach(c.DetachKey, r.filterMarkup(c))
			}
		}
		return
	}

	style := ""
	if r.cfg.ShowFilters == FiltersWhenActive && !r.st.anyFilterActive() {
		style = ` style="display:none"`
	}
	r.buf.Writef(`<tr class="gridview-filters"%s>`+"\n", style)

	i, n := 0, r.cols.Count(ModeTable)
	for c := range r.cols.ForMode(ModeTable) {
		last := i == n-1
		switch {
		case c.Filter != nil && c.DetachKey != "":
			// Mixed detachment: empty cell inline, markup stashed by key.
			r.buf.Detach(c.DetachKey, r.filterMarkup(c))
			r.buf.WriteString("<td></td>\n")
		case c.Filter != nil:
			r.buf.Writef(`<td class="gridview-filter">%s</td>`+"\n", r.filterMarkup(c))
		case lay.actionFold && last:
			r.buf.Writef(`<td class="gridview-controls">%s</td>`+"\n", r.filterControls())
		default:
			r.buf.WriteString("<td></td>\n")
		}
		i++
	}
	if lay.extraColumn {
		r.buf.Writef(`<td class="gridview-controls">%s</td>`+"\n", r.filterControls())
	}
	r.buf.WriteString("</tr>\n")
}

func (r *renderer[T]) emitBody(lay layout) error {
	sortCol, cycleOnSort := r.sortCycleColumn()

	r.buf.WriteString("<tbody>\n")
	band := r.cfg.OddClass
	prev := ""
	for i, row := range r.st.Rows {
		if cycleOnSort {
			// The comparison decides the band, so its context carries
			// none: a context-aware sort column must see a value that
			// does not depend on the outcome.
			raw, _, err := evalCellRaw(sortCol, RowContext[T]{Index: i, State: r.st}, row)
			if err != nil {
				return err
			}
			cur := plainValue(raw)
			if i > 0 && cur != prev {
				band = r.flip(band)
			}
			prev = cur
		} else if i > 0 {
			band = r.flip(band)
		}

		if br, ok := any(row).(BeforeRower); ok {
			r.buf.WriteString(br.BeforeRow())
		}

		rowAttrs := Attrs{"class": band}
		if ra, ok := any(row).(RowAttrer); ok {
			rowAttrs = mergeAttrs(ra.RowAttrs(), rowAttrs)
		}
		r.buf.Writef("<tr%s>\n", attrString(rowAttrs))

		for c := range r.cols.ForMode(ModeTable) {
			val, overrides, err := evalCell(c, RowContext[T]{Index: i, Band: band, State: r.st}, row)
			if err != nil {
				return err
			}
			r.buf.Writef("<td%s>%s</td>\n", attrString(mergeAttrs(c.Attrs, overrides)), val)
		}
		if lay.extraColumn {
			r.buf.WriteString("<td></td>\n")
		}
		r.buf.WriteString("</tr>\n")

		if ar, ok := any(row).(AfterRower); ok {
			r.buf.WriteString(ar.AfterRow())
		}
	}
	r.buf.WriteString("</tbody>\n")
	return nil
}

// sortCycleColumn resolves the column whose values drive sort-dependent
// row cycling, when that mode applies.
func (r *renderer[T]) sortCycleColumn() (Column[T], bool) {
	var zero Column[T]
	if !r.cfg.SortDependentCycling || r.st.ActiveSort == nil {
		return zero, false
	}
	for c := range r.cols.ForMode(ModeTable) {
		if c.Attribute != "" && c.Attribute == r.st.ActiveSort.Attribute {
			return c, true
		}
	}
	return zero, false
}

func (r *renderer[T]) flip(band string) string {
	if band == r.cfg.OddClass {
		return r.cfg.EvenClass
	}
	return r.cfg.OddClass
}

func (r *renderer[T]) pager() string {
	p := pagerInput{
		total:      r.st.TotalCount,
		offset:     r.st.Offset,
		pageLength: r.st.pageLength(),
		showingAll: r.st.ShowingAll,
	}
	out := pagerMarkup(p, r.st.Name, r.cfg, r.extra)
	if !r.cfg.HideExportButton {
		href := r.cfg.Links.ExportLink(r.st.Name, r.extra)
		out += fmt.Sprintf(` <a class="gridview-export" href="%s">%s</a>`,
			html.EscapeString(href), html.EscapeString(r.cfg.Translate("gridview.export")))
	}
	return out
}

func (r *renderer[T]) emitFooter(lay layout) {
	r.buf.WriteString("<tfoot>\n<tr>\n")
	r.buf.Writef(`<td class="gridview-pager" colspan="%d">%s</td>`+"\n", lay.visibleCols, r.pager())
	r.buf.WriteString("</tr>\n</tfoot>\n")
}

// clientState is the serialized configuration handed to the client
// runtime through the hidden carrier element.
type clientState struct {
	Name       string   `json:"name"`
	FilterLink string   `json:"filterLink"`
	ExportLink string   `json:"exportLink"`
	Detached   []string `json:"detached,omitempty"`
	Focus      string   `json:"focus,omitempty"`
}

func (r *renderer[T]) emitStateCarrier() {
	cs := clientState{
		Name:       r.st.Name,
		FilterLink: r.cfg.Links.FilterLink(r.st.Name, r.extra),
		ExportLink: r.cfg.Links.ExportLink(r.st.Name, r.extra),
		Focus:      r.st.Focus,
	}
	for c := range r.cols.ForMode(ModeTable) {
		if c.DetachKey != "" {
			cs.Detached = append(cs.Detached, c.DetachKey)
		}
	}
	blob, err := json.Marshal(cs)
	if err != nil {
		// clientState holds only strings; Marshal cannot fail on it.
		panic(err)
	}
	r.buf.Writef(`<div class="gridview-rc" id="grid-%s-rc" style="display:none" data-gridview="%s"></div>`+"\n",
		html.EscapeString(r.st.Name), html.EscapeString(string(blob)))
}

// evalCell runs the column's cell function and normalizes the result into
// escaped markup plus attribute overrides.
func evalCell[T any](c Column[T], rc RowContext[T], row T) (string, Attrs, error) {
	v, attrs, err := evalCellRaw(c, rc, row)
	if err != nil {
		return "", nil, err
	}
	return stringify(v), attrs, nil
}

// evalCellRaw runs the column's cell function and splits the result into
// value and attribute overrides. Accepted shapes: a Cell, the legacy
// []any{value, Attrs} pair, or a plain value.
func evalCellRaw[T any](c Column[T], rc RowContext[T], row T) (any, Attrs, error) {
	var v any
	if c.CellCtx != nil {
		v = c.CellCtx(rc, row)
	} else {
		v = c.Cell(row)
	}
	switch out := v.(type) {
	case Cell:
		return out.Value, out.Attrs, nil
	case []any:
		if len(out) != 2 {
			return nil, nil, fmt.Errorf("%w: pair form has %d elements, want 2", ErrInvalidCellResult, len(out))
		}
		attrs, err := asAttrs(out[1])
		if err != nil {
			return nil, nil, err
		}
		return out[0], attrs, nil
	default:
		return v, nil, nil
	}
}

func asAttrs(v any) (Attrs, error) {
	switch m := v.(type) {
	case Attrs:
		return m, nil
	case map[string]string:
		return Attrs(m), nil
	default:
		return nil, fmt.Errorf("%w: second element is %T, want Attrs", ErrInvalidCellResult, v)
	}
}

// stringify renders a cell value as markup. HTML values pass through
// verbatim; everything else is escaped.
func stringify(v any) string {
	switch s := v.(type) {
	case HTML:
		return string(s)
	case string:
		return html.EscapeString(s)
	case nil:
		return ""
	case fmt.Stringer:
		return html.EscapeString(s.String())
	default:
		return html.EscapeString(fmt.Sprint(v))
	}
}

// plainValue renders a cell value as text for flat exports.
func plainValue(v any) string {
	switch s := v.(type) {
	case HTML:
		return string(s)
	case string:
		return s
	case nil:
		return ""
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// mergeAttrs merges override into base. Class tokens accumulate; every
// other key overwrites.
func mergeAttrs(base, override Attrs) Attrs {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	merged := make(Attrs, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		if k == "class" && merged["class"] != "" && v != "" {
			merged["class"] = merged["class"] + " " + v
			continue
		}
		merged[k] = v
	}
	return merged
}

// attrString renders attributes in deterministic key order, with a
// leading space when non-empty.
func attrString(a Attrs) string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf(` %s="%s"`, k, html.EscapeString(a[k]))
	}
	return out
}
