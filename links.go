package gridview

import "net/url"

// LinkBuilder constructs the URLs embedded in rendered markup. Callers
// plug in their router; [QueryLinks] is the default.
type LinkBuilder interface {
	// SortLink is the target of a column header for sorting by attribute
	// in direction dir.
	SortLink(grid, attribute string, dir SortDir, extra url.Values) string
	// FilterLink is the submit target of the filter row.
	FilterLink(grid string, extra url.Values) string
	// ExportLink is the target of the export affordance.
	ExportLink(grid string, extra url.Values) string
	// PagingLink toggles between paginated and all-records mode.
	PagingLink(grid string, showAll bool, extra url.Values) string
}

// QueryLinks builds links against a single base path by flattening grid
// state into query parameters, each one prefixed with the grid name.
type QueryLinks struct {
	// Base is the path links point at. Empty means the current URL.
	Base string
}

var _ LinkBuilder = QueryLinks{}

func (q QueryLinks) build(grid string, extra url.Values, kv ...string) string {
	v := url.Values{}
	for key, vals := range extra {
		v[key] = vals
	}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(grid+"["+kv[i]+"]", kv[i+1])
	}
	if len(v) == 0 {
		return q.Base
	}
	return q.Base + "?" + v.Encode()
}

func (q QueryLinks) SortLink(grid, attribute string, dir SortDir, extra url.Values) string {
	return q.build(grid, extra, "sort", attribute, "dir", string(dir))
}

func (q QueryLinks) FilterLink(grid string, extra url.Values) string {
	return q.build(grid, extra, "action", "filter")
}

func (q QueryLinks) ExportLink(grid string, extra url.Values) string {
	return q.build(grid, extra, "action", "export")
}

func (q QueryLinks) PagingLink(grid string, showAll bool, extra url.Values) string {
	if showAll {
		return q.build(grid, extra, "all", "1")
	}
	return q.build(grid, extra, "all", "0")
}
