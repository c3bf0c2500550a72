// Package gridview renders a paginated, filterable, sortable result set
// into an HTML table or a flat spreadsheet export, driven by declarative
// column specifications.
//
// The package owns only the rendering pipeline. Loading rows, persisting
// filter and sort state, routing, and authentication belong to
// collaborators: the data-loading layer hands over a fully resolved
// [State], a [LinkBuilder] constructs every embedded URL, and a
// [TranslateFunc] resolves user-facing labels.
//
// # Rendering
//
// [Render] takes a State, a [Config], and column declarations, and emits
// one internally consistent artifact:
//
//	out, err := gridview.Render(st, gridview.Config{}, cols...)
//
// Each State renders at most once; a second call fails with
// [ErrDuplicateRender]. The exception is a render that stashed detached
// filters, which caches its artifact and returns it unchanged on repeat
// calls.
//
// # Columns
//
// A [Column] declares a label, an optionally bound attribute, a cell
// function, and an optional filter widget. Cell functions return a plain
// value, a [Cell] carrying attribute overrides for the td, or the legacy
// []any{value, Attrs} pair. Values are escaped unless typed [HTML].
// Columns restrict themselves to table or export rendering through
// [Mode]; the default is both.
//
// # Filters
//
// Filter widgets render inline in the filter row. A column with a
// DetachKey instead registers its markup in the render buffer, retrieved
// after the main render:
//
//	frag, err := gridview.RenderDetachedFilter(st, "sidebar-status")
//
// When every filter is detached no filter row is emitted at all. With
// Config.FoldFilterControls, a trailing unbound action column hosts the
// shared filter controls so no extra column is appended.
//
// # Row capabilities
//
// Row types may implement optional interfaces, discovered per row:
//
//   - [BeforeRower] / [AfterRower] — fragments spliced around the <tr>
//   - [RowAttrer] — attributes merged into the <tr>
//
// # Export
//
// [ExportFlat] writes the export-applicable columns to an XLSX workbook
// and returns its path; [ExportCSV] writes the same records as CSV. Both
// run the same cell functions as table mode and discard cell attributes.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidColumn] — inconsistent column declaration
//   - [ErrInvalidCellResult] — cell result violates the pair contract
//   - [ErrDuplicateRender] — second render without detached filters
//   - [ErrGridNotRendered] — detached retrieval before the main render
//   - [ErrDetachedFilterNotFound] — unknown detach key
//
// All of them are usage errors; none is retried internally, and a failed
// render never returns a partial artifact.
package gridview
