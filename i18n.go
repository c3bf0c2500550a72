package gridview

// TranslateFunc resolves a user-facing label by key. The localization
// collaborator supplies one; unknown keys should fall back to the key
// itself so missing translations stay visible.
type TranslateFunc func(key string) string

var defaultLabels = map[string]string{
	"gridview.filter.toggle":   "Toggle filters",
	"gridview.filter.submit":   "Apply filters",
	"gridview.filter.reset":    "Reset filters",
	"gridview.showall":         "Show all records",
	"gridview.showall.confirm": "This will load every record. Continue?",
	"gridview.backtopaging":    "Back to paginated view",
	"gridview.export":          "Export",
}

func defaultTranslate(key string) string {
	if label, ok := defaultLabels[key]; ok {
		return label
	}
	return key
}
