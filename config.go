package gridview

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ShowFilters controls filter-row visibility.
type ShowFilters int

const (
	// FiltersWhenActive renders the filter row but hides it unless some
	// filter value is currently set; the client runtime toggles it.
	FiltersWhenActive ShowFilters = iota
	// FiltersAlways renders the filter row visible.
	FiltersAlways
	// FiltersOff suppresses the filter row and all filter controls.
	FiltersOff
)

// Config tunes one render pass. The zero value is usable; defaults are
// merged once before the orchestrator runs.
type Config struct {
	ShowFilters          ShowFilters
	FoldFilterControls   bool
	ShowUpperPagination  bool
	SortDependentCycling bool
	AllowShowAll         bool
	// ShowAllThreshold is the record count above which the show-all
	// affordance carries a confirmation prompt.
	ShowAllThreshold int

	HideSubmitButton bool
	HideResetButton  bool
	HideExportButton bool

	// ExtraLinkParams is appended to every generated link.
	ExtraLinkParams map[string]string
	HeaderRowAttrs  Attrs
	RootAttrs       Attrs

	TableClass string
	OddClass   string
	EvenClass  string

	Links     LinkBuilder
	Translate TranslateFunc

	// DevMode emits a guard script that warns when the client runtime
	// library is missing.
	DevMode bool
}

const defaultShowAllThreshold = 500

func (c Config) withDefaults() Config {
	if c.TableClass == "" {
		c.TableClass = "gridview"
	}
	if c.OddClass == "" {
		c.OddClass = "odd"
	}
	if c.EvenClass == "" {
		c.EvenClass = "even"
	}
	if c.ShowAllThreshold == 0 {
		c.ShowAllThreshold = defaultShowAllThreshold
	}
	if c.Links == nil {
		c.Links = QueryLinks{}
	}
	if c.Translate == nil {
		c.Translate = defaultTranslate
	}
	return c
}

// yamlConfig is the YAML-facing shape of Config. Collaborator fields
// (Links, Translate) are code, not data, and stay out of it.
type yamlConfig struct {
	ShowFilters          string            `yaml:"show_filters"`
	FoldFilterControls   bool              `yaml:"fold_filter_controls"`
	ShowUpperPagination  bool              `yaml:"show_upper_pagination"`
	SortDependentCycling bool              `yaml:"sort_dependent_cycling"`
	AllowShowAll         bool              `yaml:"allow_show_all"`
	ShowAllThreshold     int               `yaml:"show_all_threshold"`
	HideSubmitButton     bool              `yaml:"hide_submit_button"`
	HideResetButton      bool              `yaml:"hide_reset_button"`
	HideExportButton     bool              `yaml:"hide_export_button"`
	ExtraLinkParams      map[string]string `yaml:"extra_link_params"`
	HeaderRowAttrs       map[string]string `yaml:"header_row_attrs"`
	RootAttrs            map[string]string `yaml:"root_attrs"`
	TableClass           string            `yaml:"table_class"`
	OddClass             string            `yaml:"odd_class"`
	EvenClass            string            `yaml:"even_class"`
	DevMode              bool              `yaml:"dev_mode"`
}

// ConfigFromYAML parses a YAML document into a Config. show_filters
// accepts "when-active" (default), "always", and "off".
func ConfigFromYAML(data []byte) (Config, error) {
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("gridview: parse config: %w", err)
	}
	cfg := Config{
		FoldFilterControls:   yc.FoldFilterControls,
		ShowUpperPagination:  yc.ShowUpperPagination,
		SortDependentCycling: yc.SortDependentCycling,
		AllowShowAll:         yc.AllowShowAll,
		ShowAllThreshold:     yc.ShowAllThreshold,
		HideSubmitButton:     yc.HideSubmitButton,
		HideResetButton:      yc.HideResetButton,
		HideExportButton:     yc.HideExportButton,
		ExtraLinkParams:      yc.ExtraLinkParams,
		HeaderRowAttrs:       Attrs(yc.HeaderRowAttrs),
		RootAttrs:            Attrs(yc.RootAttrs),
		TableClass:           yc.TableClass,
		OddClass:             yc.OddClass,
		EvenClass:            yc.EvenClass,
		DevMode:              yc.DevMode,
	}
	switch yc.ShowFilters {
	case "", "when-active":
		cfg.ShowFilters = FiltersWhenActive
	case "always":
		cfg.ShowFilters = FiltersAlways
	case "off", "no":
		cfg.ShowFilters = FiltersOff
	default:
		return Config{}, fmt.Errorf("gridview: parse config: unknown show_filters %q", yc.ShowFilters)
	}
	return cfg, nil
}
