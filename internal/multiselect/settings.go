package multiselect

import (
	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/selection"
)

// Settings is a fully resolved multiselect configuration.
type Settings struct {
	Options   []config.Option
	Separator string
	Strict    bool

	ApplyLabel            string
	ClearLabel            string
	SelectAllLabel        string
	ClearAllLabel         string
	SearchPlaceholder     string
	SelectPlaceholder     string
	AllSelectedLabel      string
	SelectedCountTemplate string // "%n" is replaced by the selection count

	MaxDisplayedSelections int
}

// Defaults fills every field a column configuration leaves out.
var Defaults = Settings{
	Separator:              selection.DefaultSeparator,
	Strict:                 true,
	ApplyLabel:             "Apply Filter",
	ClearLabel:             "Clear Filter",
	SelectAllLabel:         "Select All",
	ClearAllLabel:          "Clear All",
	SearchPlaceholder:      "Search...",
	SelectPlaceholder:      "Select...",
	AllSelectedLabel:       "All",
	SelectedCountTemplate:  "Selected: %n",
	MaxDisplayedSelections: 2,
}

// Resolve applies Defaults to cfg. The option list is copied.
func Resolve(cfg config.FilterConfig) Settings {
	s := Defaults
	s.Options = append([]config.Option(nil), cfg.List...)

	if cfg.Separator != nil && *cfg.Separator != "" {
		s.Separator = *cfg.Separator
	}
	if cfg.Strict != nil {
		s.Strict = *cfg.Strict
	}
	if cfg.MaxDisplayedSelections != nil {
		s.MaxDisplayedSelections = *cfg.MaxDisplayedSelections
	}

	for _, f := range []struct {
		dst *string
		src string
	}{
		{&s.ApplyLabel, cfg.ApplyButtonText},
		{&s.ClearLabel, cfg.ClearButtonText},
		{&s.SelectAllLabel, cfg.SelectAllButtonText},
		{&s.ClearAllLabel, cfg.ClearAllButtonText},
		{&s.SearchPlaceholder, cfg.SearchPlaceholder},
		{&s.SelectPlaceholder, cfg.SelectText},
		{&s.AllSelectedLabel, cfg.AllSelectedText},
		{&s.SelectedCountTemplate, cfg.SelectedCountText},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return s
}

// Configured reports whether s came from Resolve. The zero Settings of a
// not yet initialized filter has no separator.
func (s Settings) Configured() bool {
	return s.Separator != ""
}
