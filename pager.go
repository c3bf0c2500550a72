package gridview

import (
	"fmt"
	"html"
	"net/url"
)

// pagerInput is everything the status summarizer needs, detached from the
// generic State so it stays testable without a row type.
type pagerInput struct {
	total      int
	offset     int
	pageLength int
	showingAll bool
}

// summary renders the "{first}-{last} / {total}" range status, or "0" when
// the grid is empty.
func (p pagerInput) summary() string {
	if p.total == 0 && p.pageLength == 0 {
		return "0"
	}
	return fmt.Sprintf("%d-%d / %d", p.offset+1, p.offset+p.pageLength, p.total)
}

// pagerMarkup renders the status summary plus, mutually exclusively, the
// show-all or back-to-paged affordance.
func pagerMarkup(p pagerInput, grid string, cfg Config, extra url.Values) string {
	out := `<span class="gridview-status">` + html.EscapeString(p.summary()) + `</span>`
	switch {
	case p.showingAll:
		href := cfg.Links.PagingLink(grid, false, extra)
		out += fmt.Sprintf(` <a class="gridview-backtopaging" href="%s">%s</a>`,
			html.EscapeString(href), html.EscapeString(cfg.Translate("gridview.backtopaging")))
	case cfg.AllowShowAll && p.total > p.pageLength:
		href := cfg.Links.PagingLink(grid, true, extra)
		confirm := ""
		if p.total > cfg.ShowAllThreshold {
			confirm = fmt.Sprintf(` data-confirm="%s"`, html.EscapeString(cfg.Translate("gridview.showall.confirm")))
		}
		out += fmt.Sprintf(` <a class="gridview-showall" href="%s"%s>%s</a>`,
			html.EscapeString(href), confirm, html.EscapeString(cfg.Translate("gridview.showall")))
	}
	return out
}
